package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post categories as used by the mobile app
const (
	CategoryGeneral      = "general"
	CategoryRelationship = "relationship"
	CategoryChat         = "chat"
)

// ValidCategory reports whether c is one of the closed post categories.
func ValidCategory(c string) bool {
	return c == CategoryGeneral || c == CategoryRelationship || c == CategoryChat
}

// Post is a board post. Likes holds liker user ids; CommentsCount is a
// denormalized counter maintained with $inc on comment create/delete.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"`
	Category      string             `bson:"category" json:"category"`
	AuthorID      string             `bson:"authorId" json:"authorId"`
	AuthorName    *string            `bson:"authorName" json:"authorName"`
	IsAnonymous   bool               `bson:"isAnonymous" json:"isAnonymous"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
	Views         int64              `bson:"views" json:"views"`
	Likes         []string           `bson:"likesArray" json:"likesArray"`
	CommentsCount int64              `bson:"commentsCount" json:"commentsCount"`
	IsHidden      bool               `bson:"isHidden" json:"isHidden"`
	IsAdminPost   bool               `bson:"isAdminPost" json:"isAdminPost"`
}
