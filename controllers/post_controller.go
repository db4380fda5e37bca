package controllers

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"darakbang/db"
	"darakbang/middlewares"
	"darakbang/models"
	"darakbang/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPosts lists posts for the management screen. The whole collection is
// fetched newest-first, then category, search, and date filters are applied
// in memory before slicing into fixed pages, so the result carries exact
// filtered totals.
func GetPosts(ctx *gin.Context) {
	params := utils.ParseListParams(ctx)
	category := ctx.DefaultQuery("category", "all")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection("posts").Find(dbCtx, bson.M{}, opts)
	if err != nil {
		log.Printf("Failed to fetch posts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(dbCtx)

	var posts []models.Post
	if err := cursor.All(dbCtx, &posts); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if category != "all" && p.Category != category {
			continue
		}
		if !utils.MatchesSearch(params.Search, &p.Title, &p.Content) {
			continue
		}
		if !utils.InDateRange(p.CreatedAt, params.StartDate, params.EndDate) {
			continue
		}
		filtered = append(filtered, p)
	}

	ctx.JSON(http.StatusOK, utils.Paginate(filtered, params.Page))
}

// GetPost returns one post together with its comments in display order.
func GetPost(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = db.GetCollection("posts").FindOne(dbCtx, bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := db.GetCollection("comments").Find(dbCtx, bson.M{"postId": postID}, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(dbCtx)

	var comments []models.Comment
	if err := cursor.All(dbCtx, &comments); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}

	organized := utils.OrganizeComments(comments)
	if organized == nil {
		organized = []models.Comment{}
	}
	ctx.JSON(http.StatusOK, gin.H{"post": post, "comments": organized})
}

// CreatePostRequest is the seed-post form.
type CreatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category" binding:"required"`
	AuthorName  string `json:"authorName"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// CreatePost writes an admin-seeded post. Anonymous posts drop the author
// name; otherwise a missing name gets a generated nickname. Views start at a
// small random value so seeded posts do not stand out as fresh zeros.
func CreatePost(ctx *gin.Context) {
	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	var authorName *string
	if !req.IsAnonymous {
		name := strings.TrimSpace(req.AuthorName)
		if name == "" {
			name = utils.RandomNickname()
		}
		authorName = &name
	}

	now := time.Now()
	post := models.Post{
		ID:            primitive.NewObjectID(),
		Title:         strings.TrimSpace(req.Title),
		Content:       strings.TrimSpace(req.Content),
		Category:      req.Category,
		AuthorID:      fmt.Sprintf("admin_%d", now.UnixMilli()),
		AuthorName:    authorName,
		IsAnonymous:   req.IsAnonymous,
		CreatedAt:     now,
		UpdatedAt:     now,
		Views:         int64(rand.Intn(50)),
		Likes:         []string{},
		CommentsCount: 0,
		IsAdminPost:   true,
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.GetCollection("posts").InsertOne(dbCtx, post); err != nil {
		log.Printf("Failed to create post: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post": post, "message": "Post created successfully"})
}

// UpdatePostRequest edits title and content.
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdatePost edits a post's title and content.
func UpdatePost(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection("posts").UpdateOne(dbCtx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{
			"title":     strings.TrimSpace(req.Title),
			"content":   strings.TrimSpace(req.Content),
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// UpdatePostViews sets the view counter, floored at zero.
func UpdatePostViews(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req struct {
		Views int64 `json:"views"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	if req.Views < 0 {
		req.Views = 0
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection("posts").UpdateOne(dbCtx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"views": req.Views}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update views"})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Views updated successfully", "views": req.Views})
}

// TogglePostVisibility flips the hidden flag.
func TogglePostVisibility(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = db.GetCollection("posts").FindOne(dbCtx, bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	hidden := !post.IsHidden
	_, err = db.GetCollection("posts").UpdateOne(dbCtx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"isHidden": hidden}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Visibility updated", "isHidden": hidden})
}

// DeletePost removes a post and cascades to its comments. The store has no
// cross-collection cascade, so the comments go first; a post whose comment
// cleanup failed is left intact for a retry.
func DeletePost(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deleted, err := db.GetCollection("comments").DeleteMany(dbCtx, bson.M{"postId": postID})
	if err != nil {
		log.Printf("Failed to delete comments for post %s: %v", postID.Hex(), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post comments"})
		return
	}

	result, err := db.GetCollection("posts").DeleteOne(dbCtx, bson.M{"_id": postID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.DeletedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	middlewares.LogAdminAction(ctx, "delete_post", "post", postID, map[string]interface{}{
		"deletedComments": deleted.DeletedCount,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully", "deletedComments": deleted.DeletedCount})
}
