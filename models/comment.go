package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to a post. ParentCommentID is set only on replies and always
// references a top-level comment: reply chains are flattened to depth 1 at
// creation time, so a reply never points at another reply.
type Comment struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	PostID          primitive.ObjectID  `bson:"postId" json:"postId"`
	Text            string              `bson:"text" json:"text"`
	UserID          string              `bson:"userId" json:"userId"`
	UserName        *string             `bson:"userName" json:"userName"`
	IsAnonymous     bool                `bson:"isAnonymous" json:"isAnonymous"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	Likes           []string            `bson:"likes" json:"likes"`
	IsPinned        bool                `bson:"isPinned" json:"isPinned"`
	IsAdminComment  bool                `bson:"isAdminComment" json:"isAdminComment"`
	ParentCommentID *primitive.ObjectID `bson:"parentCommentId,omitempty" json:"parentCommentId,omitempty"`
	ReplyTo         *string             `bson:"replyTo,omitempty" json:"replyTo,omitempty"`
}

// IsReply reports whether the comment is a depth-1 reply.
func (c Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
