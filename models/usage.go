package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Usage record kinds
const (
	UsageCompatibility = "compatibility"
	UsageAdvice        = "advice"
)

// UsageRecord is one compatibility-analysis or advice run by an app user.
// The two kinds live in separate collections keyed by userId; Type is filled
// in when records are merged for display.
type UsageRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Type      string             `bson:"-" json:"type"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// compatibility payload
	MyName      string `bson:"myName,omitempty" json:"myName,omitempty"`
	PartnerName string `bson:"partnerName,omitempty" json:"partnerName,omitempty"`
	Score       int    `bson:"score,omitempty" json:"score,omitempty"`

	// advice payload
	Situation string `bson:"situation,omitempty" json:"situation,omitempty"`
}

// UserUsage is the merged per-user view served to the console.
type UserUsage struct {
	UserID             string        `json:"userId"`
	UserName           string        `json:"userName"`
	Email              string        `json:"email"`
	CompatibilityCount int           `json:"compatibilityCount"`
	AdviceCount        int           `json:"adviceCount"`
	Compatibility      []UsageRecord `json:"compatibilityRecords"`
	Advice             []UsageRecord `json:"adviceRecords"`
	LastUsed           time.Time     `json:"lastUsed"`
}
