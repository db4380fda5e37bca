package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"darakbang/db"
	"darakbang/models"
	"darakbang/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// GetDashboard fans out the summary queries concurrently and merges them once
// all complete. Any failed query fails the whole load: the console shows no
// partial dashboard, the operator retries instead.
func GetDashboard(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	todayStart := utils.DayStart(time.Now())

	var (
		totalUsers, totalPosts, totalReports int64
		todayUsers, todayPosts               int64
		totalComments                        int64
		recentPosts                          []models.Post
		recentUsers                          []models.User
	)

	g, gctx := errgroup.WithContext(dbCtx)

	g.Go(func() error {
		var err error
		totalUsers, err = db.GetCollection("users").CountDocuments(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		totalPosts, err = db.GetCollection("posts").CountDocuments(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		totalReports, err = db.GetCollection("reports").CountDocuments(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		todayUsers, err = db.GetCollection("users").CountDocuments(gctx, bson.M{
			"createdAt": bson.M{"$gte": todayStart},
		})
		return err
	})
	g.Go(func() error {
		var err error
		todayPosts, err = db.GetCollection("posts").CountDocuments(gctx, bson.M{
			"createdAt": bson.M{"$gte": todayStart},
		})
		return err
	})
	g.Go(func() error {
		// Comment total = sum of the posts' denormalized counters. One
		// aggregation instead of a scan over the comments collection.
		var err error
		totalComments, err = sumCommentsCount(gctx)
		return err
	})
	g.Go(func() error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)
		cursor, err := db.GetCollection("posts").Find(gctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &recentPosts)
	})
	g.Go(func() error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)
		cursor, err := db.GetCollection("users").Find(gctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &recentUsers)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Dashboard load failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	if recentPosts == nil {
		recentPosts = []models.Post{}
	}
	if recentUsers == nil {
		recentUsers = []models.User{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalUsers":    totalUsers,
			"totalPosts":    totalPosts,
			"totalComments": totalComments,
			"totalReports":  totalReports,
			"todayUsers":    todayUsers,
			"todayPosts":    todayPosts,
		},
		"recentPosts": recentPosts,
		"recentUsers": recentUsers,
	})
}

func sumCommentsCount(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$commentsCount"}}},
		}}},
	}
	cursor, err := db.GetCollection("posts").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
