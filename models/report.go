package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses
const (
	ReportPending  = "pending"
	ReportApproved = "approved"
	ReportRejected = "rejected"
)

// Report reasons
const (
	ReasonSpam          = "spam"
	ReasonInappropriate = "inappropriate"
	ReasonHarassment    = "harassment"
	ReasonOther         = "other"
)

// Report is a user-filed report against a post or comment. Content is a
// snapshot of the reported text taken at filing time, so it survives deletion
// of the target.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type        string             `bson:"type" json:"type"` // "post" or "comment"
	Reason      string             `bson:"reason" json:"reason"`
	Details     string             `bson:"details" json:"details"`
	Content     string             `bson:"content" json:"content"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ProcessedAt *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
}

// Processed reports whether the report has been approved or rejected.
func (r Report) Processed() bool {
	return r.Status == ReportApproved || r.Status == ReportRejected
}
