package controllers

import (
	"context"
	"fmt"
	"log"
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

// commentWithPost joins the parent post's title onto a comment row for the
// board-wide comments screen.
type commentWithPost struct {
	models.Comment
	PostTitle string `json:"postTitle"`
}

// GetComments lists every comment on the board, newest first, with search and
// date filters applied in memory and the post titles joined on.
func GetComments(ctx *gin.Context) {
	params := utils.ParseListParams(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	titleCursor, err := db.GetCollection("posts").Find(dbCtx, bson.M{},
		options.Find().SetProjection(bson.M{"title": 1}))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer titleCursor.Close(dbCtx)

	var postTitles []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Title string             `bson:"title"`
	}
	if err := titleCursor.All(dbCtx, &postTitles); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}
	titles := make(map[primitive.ObjectID]string, len(postTitles))
	for _, p := range postTitles {
		titles[p.ID] = p.Title
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection("comments").Find(dbCtx, bson.M{}, opts)
	if err != nil {
		log.Printf("Failed to fetch comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(dbCtx)

	var comments []models.Comment
	if err := cursor.All(dbCtx, &comments); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}

	filtered := make([]commentWithPost, 0, len(comments))
	for _, c := range comments {
		if !utils.MatchesSearch(params.Search, &c.Text, c.UserName) {
			continue
		}
		if !utils.InDateRange(c.CreatedAt, params.StartDate, params.EndDate) {
			continue
		}
		filtered = append(filtered, commentWithPost{Comment: c, PostTitle: titles[c.PostID]})
	}

	ctx.JSON(http.StatusOK, utils.Paginate(filtered, params.Page))
}

// CreateCommentRequest is the seed comment/reply form. ReplyToCommentID names
// the comment being answered; the effective parent is resolved server-side.
type CreateCommentRequest struct {
	Text             string  `json:"text" binding:"required"`
	UserName         string  `json:"userName"`
	IsAnonymous      bool    `json:"isAnonymous"`
	ReplyToCommentID *string `json:"replyToCommentId,omitempty"`
}

// CreateComment writes an admin-seeded comment or reply on a post. Replying
// to a reply reparents onto the top-level ancestor, so threads never nest
// deeper than one level. The post's commentsCount moves with an atomic $inc.
func CreateComment(ctx *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	if err := db.GetCollection("posts").FindOne(dbCtx, bson.M{"_id": postID}).Decode(&post); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var userName *string
	if !req.IsAnonymous {
		name := strings.TrimSpace(req.UserName)
		if name == "" {
			name = utils.RandomNickname()
		}
		userName = &name
	}

	now := time.Now()
	comment := models.Comment{
		ID:             primitive.NewObjectID(),
		PostID:         postID,
		Text:           strings.TrimSpace(req.Text),
		UserID:         fmt.Sprintf("admin_%d", now.UnixMilli()),
		UserName:       userName,
		IsAnonymous:    req.IsAnonymous,
		CreatedAt:      now,
		Likes:          []string{},
		IsPinned:       false,
		IsAdminComment: true,
	}

	if req.ReplyToCommentID != nil && *req.ReplyToCommentID != "" {
		targetID, err := primitive.ObjectIDFromHex(*req.ReplyToCommentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
			return
		}
		var target models.Comment
		err = db.GetCollection("comments").FindOne(dbCtx, bson.M{"_id": targetID, "postId": postID}).Decode(&target)
		if err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment to reply to not found"})
			return
		}
		parentID := utils.ResolveReplyParent(target)
		comment.ParentCommentID = &parentID
		replyTo := displayName(target)
		comment.ReplyTo = &replyTo
	}

	if _, err := db.GetCollection("comments").InsertOne(dbCtx, comment); err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if _, err := db.GetCollection("posts").UpdateOne(dbCtx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"commentsCount": 1}},
	); err != nil {
		log.Printf("Failed to bump commentsCount for post %s: %v", postID.Hex(), err)
	}

	ctx.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ToggleCommentPin flips the pinned flag on a comment.
func ToggleCommentPin(ctx *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(ctx.Param("commentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var comment models.Comment
	if err := db.GetCollection("comments").FindOne(dbCtx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	pinned := !comment.IsPinned
	_, err = db.GetCollection("comments").UpdateOne(dbCtx,
		bson.M{"_id": commentID},
		bson.M{"$set": bson.M{"isPinned": pinned}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Pin updated", "isPinned": pinned})
}

// DeleteComment removes a comment and decrements the parent post's counter.
func DeleteComment(ctx *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(ctx.Param("commentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var comment models.Comment
	if err := db.GetCollection("comments").FindOne(dbCtx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	result, err := db.GetCollection("comments").DeleteOne(dbCtx, bson.M{"_id": commentID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if result.DeletedCount == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if _, err := db.GetCollection("posts").UpdateOne(dbCtx,
		bson.M{"_id": comment.PostID},
		bson.M{"$inc": bson.M{"commentsCount": -1}},
	); err != nil {
		log.Printf("Failed to decrement commentsCount for post %s: %v", comment.PostID.Hex(), err)
	}

	middlewares.LogAdminAction(ctx, "delete_comment", "comment", commentID, map[string]interface{}{
		"postId": comment.PostID.Hex(),
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// displayName mirrors how the app renders comment authors.
func displayName(c models.Comment) string {
	if c.IsAnonymous || c.UserName == nil || *c.UserName == "" {
		return "anonymous"
	}
	return *c.UserName
}
