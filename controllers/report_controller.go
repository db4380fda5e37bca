package controllers

import (
	"context"
	"log"
	"net/http"
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

// GetReports lists reports newest-first. The status filter accepts all,
// pending, or processed; reports written before the status field existed
// count as pending.
func GetReports(ctx *gin.Context) {
	params := utils.ParseListParams(ctx)
	statusFilter := ctx.DefaultQuery("status", "all")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection("reports").Find(dbCtx, bson.M{}, opts)
	if err != nil {
		log.Printf("Failed to fetch reports: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	defer cursor.Close(dbCtx)

	var reports []models.Report
	if err := cursor.All(dbCtx, &reports); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reports"})
		return
	}

	filtered := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		switch statusFilter {
		case "pending":
			if r.Processed() {
				continue
			}
		case "processed":
			if !r.Processed() {
				continue
			}
		}
		filtered = append(filtered, r)
	}

	ctx.JSON(http.StatusOK, utils.Paginate(filtered, params.Page))
}

// ProcessReport approves or rejects a pending report and stamps processedAt.
func ProcessReport(ctx *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"` // "approve" or "reject"
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var status string
	switch req.Action {
	case "approve":
		status = models.ReportApproved
	case "reject":
		status = models.ReportRejected
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Action must be 'approve' or 'reject'"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection("reports").UpdateOne(dbCtx,
		bson.M{"_id": reportID},
		bson.M{"$set": bson.M{"status": status, "processedAt": time.Now()}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Report processed", "status": status})
}

// DeleteReport removes a report outright.
func DeleteReport(ctx *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection("reports").DeleteOne(dbCtx, bson.M{"_id": reportID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}
	if result.DeletedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	middlewares.LogAdminAction(ctx, "delete_report", "report", reportID, nil)

	ctx.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}
