package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Role changes go through the organizer-request workflow or an
// admin promotion, never through profile updates.
const (
	RoleUser       = "user"
	RoleOrganizer  = "organizer"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// UserInfo is the projection embedded in populated responses
type UserInfo struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role,omitempty"`
}
