package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"darakbang/db"
	"darakbang/middlewares"
	"darakbang/models"
	"darakbang/services"
	"darakbang/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotices lists notices newest-first with title/content search.
func GetNotices(ctx *gin.Context) {
	params := utils.ParseListParams(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection("notices").Find(dbCtx, bson.M{}, opts)
	if err != nil {
		log.Printf("Failed to fetch notices: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notices"})
		return
	}
	defer cursor.Close(dbCtx)

	var notices []models.Notice
	if err := cursor.All(dbCtx, &notices); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notices"})
		return
	}

	filtered := make([]models.Notice, 0, len(notices))
	for _, n := range notices {
		if !utils.MatchesSearch(params.Search, &n.Title, &n.Content) {
			continue
		}
		filtered = append(filtered, n)
	}

	ctx.JSON(http.StatusOK, utils.Paginate(filtered, params.Page))
}

// NoticeRequest is the create/update form for a notice.
type NoticeRequest struct {
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	Category string  `json:"category"`
	ImageURL *string `json:"imageUrl"`
}

// CreateNotice writes a new notice, active by default.
func CreateNotice(ctx *gin.Context) {
	var req NoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}

	now := time.Now()
	notice := models.Notice{
		ID:        primitive.NewObjectID(),
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		Category:  req.Category,
		ImageURL:  req.ImageURL,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.GetCollection("notices").InsertOne(dbCtx, notice); err != nil {
		log.Printf("Failed to create notice: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notice"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"notice": notice, "message": "Notice created successfully"})
}

// UpdateNotice edits a notice's title, content, category, and image.
func UpdateNotice(ctx *gin.Context) {
	noticeID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notice ID"})
		return
	}

	var req NoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	update := bson.M{
		"title":     strings.TrimSpace(req.Title),
		"content":   strings.TrimSpace(req.Content),
		"updatedAt": time.Now(),
	}
	if req.Category != "" {
		update["category"] = req.Category
	}
	if req.ImageURL != nil {
		update["imageUrl"] = req.ImageURL
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection("notices").UpdateOne(dbCtx,
		bson.M{"_id": noticeID},
		bson.M{"$set": update},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notice"})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notice updated successfully"})
}

// ToggleNoticeActive flips whether the notice shows in the app.
func ToggleNoticeActive(ctx *gin.Context) {
	noticeID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notice ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var notice models.Notice
	if err := db.GetCollection("notices").FindOne(dbCtx, bson.M{"_id": noticeID}).Decode(&notice); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	active := !notice.IsActive
	_, err = db.GetCollection("notices").UpdateOne(dbCtx,
		bson.M{"_id": noticeID},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notice"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notice updated", "isActive": active})
}

// DeleteNotice removes a notice.
func DeleteNotice(ctx *gin.Context) {
	noticeID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notice ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection("notices").DeleteOne(dbCtx, bson.M{"_id": noticeID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notice"})
		return
	}
	if result.DeletedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	middlewares.LogAdminAction(ctx, "delete_notice", "notice", noticeID, nil)

	ctx.JSON(http.StatusOK, gin.H{"message": "Notice deleted successfully"})
}

// UploadNoticeImage stores a banner image and returns its delivery URL. The
// endpoint reports 503 when no storage backend is configured.
func UploadNoticeImage(ctx *gin.Context) {
	storage := services.GetStorageService()
	if storage == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image upload is not configured"})
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}
	defer file.Close()

	upCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := storage.UploadNoticeImage(upCtx, file, fileHeader.Filename)
	if err != nil {
		log.Printf("Notice image upload failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
