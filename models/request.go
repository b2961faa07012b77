package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review statuses shared by organizer-promotion and event-deletion requests.
// A request is terminal once it leaves pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// OrganizerRequest asks an admin to promote a user to organizer.
// At most one pending request per user exists at a time.
type OrganizerRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`

	// Enriched fields
	User *UserInfo `bson:"-" json:"user,omitempty"`
}

// EventDeleteRequest asks an admin to delete an organizer's own event.
// At most one pending request per event exists at a time.
type EventDeleteRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"eventId"`
	OrganizerID primitive.ObjectID `bson:"organizer_id" json:"organizerId"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`

	// Enriched fields
	Event     *Event    `bson:"-" json:"event,omitempty"`
	Organizer *UserInfo `bson:"-" json:"organizer,omitempty"`
}

// Decided reports whether a request status is terminal
func Decided(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
