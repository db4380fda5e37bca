package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"darakbang/db"
	"darakbang/middlewares"
	"darakbang/models"
	"darakbang/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPushOverview feeds the push screen: how many devices a broadcast would
// reach, which posts are trending, and the latest active notices to promote.
func GetPushOverview(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	users, err := loadAllUsers(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	tokens := services.CollectTokens(users)

	// Trending is scored over the 50 newest posts, not the whole board, so a
	// stale high-traffic post cannot squat on the list forever.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(50)
	cursor, err := db.GetCollection("posts").Find(dbCtx, bson.M{}, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	var posts []models.Post
	if err := cursor.All(dbCtx, &posts); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}
	trending := services.TopTrending(posts, 5)
	if trending == nil {
		trending = []models.Post{}
	}

	noticeOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)
	noticeCursor, err := db.GetCollection("notices").Find(dbCtx, bson.M{"isActive": true}, noticeOpts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notices"})
		return
	}
	var notices []models.Notice
	if err := noticeCursor.All(dbCtx, &notices); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notices"})
		return
	}
	if notices == nil {
		notices = []models.Notice{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"tokenCount":    len(tokens),
		"trendingPosts": trending,
		"recentNotices": notices,
	})
}

// SendCustomPushRequest is the free-form broadcast body.
type SendCustomPushRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// SendCustomPush broadcasts an operator-written message to every device.
func SendCustomPush(ctx *gin.Context) {
	var req SendCustomPushRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	broadcast(ctx, req.Title, req.Body, map[string]string{"type": "custom"}, "send_custom_push", "push", primitive.NilObjectID)
}

// SendNoticePush announces a notice to every device.
func SendNoticePush(ctx *gin.Context) {
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

	data := map[string]string{"type": "notice", "noticeId": noticeID.Hex()}
	broadcast(ctx, "📢 새 공지사항", notice.Title, data, "send_notice_push", "notice", noticeID)
}

// SendPostPush promotes a trending post to every device.
func SendPostPush(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	if err := db.GetCollection("posts").FindOne(dbCtx, bson.M{"_id": postID}).Decode(&post); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	data := map[string]string{"type": "post", "postId": postID.Hex()}
	broadcast(ctx, "🔥 지금 핫한 글", post.Title, data, "send_post_push", "post", postID)
}

// broadcast collects every registered token, fans the message out through the
// dispatcher, and reports the tallies.
func broadcast(ctx *gin.Context, title, body string, data map[string]string, action, resourceType string, resourceID primitive.ObjectID) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := loadAllUsers(dbCtx)
	if err != nil {
		log.Printf("Failed to fetch users for push: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	tokens := services.CollectTokens(users)
	if len(tokens) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"message": "No devices registered for push", "result": services.DispatchResult{}})
		return
	}

	messages := services.BuildMessages(tokens, title, body, data)

	// The dispatch runs on its own deadline: batches to the proxy can
	// legitimately outlive the lookup timeout.
	sendCtx, sendCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer sendCancel()

	result := services.GetPushService().Dispatch(sendCtx, messages)

	middlewares.LogAdminAction(ctx, action, resourceType, resourceID, map[string]interface{}{
		"tokens":       result.Tokens,
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"message": result.Summary(),
		"result":  result,
	})
}

func loadAllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := db.GetCollection("users").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
