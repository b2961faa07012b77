package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DateTime    time.Time          `bson:"date_time" json:"dateTime"`
	City        string             `bson:"city" json:"city"`
	Address     string             `bson:"address" json:"address"`
	Capacity    int                `bson:"capacity" json:"capacity"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`

	// Enriched fields
	Organizer        *UserInfo `bson:"-" json:"organizer,omitempty"`
	Registered       int64     `bson:"-" json:"registered"`
	AvailableSpots   int64     `bson:"-" json:"availableSpots"`
	IsUserRegistered bool      `bson:"-" json:"isUserRegistered"`
}

// AvailableSpots is derived, never persisted. Clamped at zero so an event
// whose capacity was lowered below its registration count reports 0, not a
// negative number.
func AvailableSpots(capacity int, registered int64) int64 {
	spots := int64(capacity) - registered
	if spots < 0 {
		return 0
	}
	return spots
}
