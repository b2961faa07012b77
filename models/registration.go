package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Registration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	EventID      primitive.ObjectID `bson:"event_id" json:"eventId"`
	RegisteredAt time.Time          `bson:"registered_at" json:"registeredAt"`

	// Enriched fields
	Event *Event    `bson:"-" json:"event,omitempty"`
	User  *UserInfo `bson:"-" json:"user,omitempty"`
}
