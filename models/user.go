package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth providers recorded on app users
const (
	ProviderEmail   = "email"
	ProviderGoogle  = "google"
	ProviderApple   = "apple"
	ProviderUnknown = "unknown"
)

// User is an app end user (not a console operator). PushToken is the opaque
// device token registered by the mobile client, empty when the user never
// granted notification permission.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nickname  *string            `bson:"nickname" json:"nickname"`
	Email     *string            `bson:"email" json:"email"`
	Provider  string             `bson:"provider" json:"provider"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	IsBanned  bool               `bson:"isBanned" json:"isBanned"`
	BannedAt  *time.Time         `bson:"bannedAt,omitempty" json:"bannedAt,omitempty"`
	PushToken *string            `bson:"pushToken,omitempty" json:"pushToken,omitempty"`
}

// DisplayName returns the best human-readable name for the user.
func (u User) DisplayName() string {
	if u.Nickname != nil && *u.Nickname != "" {
		return *u.Nickname
	}
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	return "unknown"
}
