package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	config "github.com/kevin/event-manager-go/config"
)

const mockDB = "event_manager"

// mockConfig wires handlers to mtest's mocked deployment, so request flows
// can be exercised without a live MongoDB
func mockConfig(mt *mtest.T) *config.Config {
	return &config.Config{
		MongoClient: mt.Client,
		DBName:      mockDB,
		JWTSecret:   "test-secret",
	}
}

// asUser stands in for the auth middleware, stashing the identity the
// handlers read from the request context
func asUser(userID primitive.ObjectID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.Hex())
		c.Set("role", role)
	}
}

// eventDoc builds the stored shape of an event for find responses
func eventDoc(id, owner primitive.ObjectID, capacity int, updatedAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Go Meetup"},
		{Key: "description", Value: "An evening of talks about Go."},
		{Key: "date_time", Value: primitive.NewDateTimeFromTime(updatedAt.Add(48 * time.Hour))},
		{Key: "city", Value: "Nairobi"},
		{Key: "address", Value: "123 Main Street"},
		{Key: "capacity", Value: int32(capacity)},
		{Key: "created_by", Value: owner},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(updatedAt)},
		{Key: "updated_at", Value: primitive.NewDateTimeFromTime(updatedAt)},
	}
}

// findResponse answers a FindOne with a single document
func findResponse(ns string, doc bson.D) bson.D {
	return mtest.CreateCursorResponse(0, mockDB+"."+ns, mtest.FirstBatch, doc)
}

// emptyFindResponse answers a FindOne with no match (ErrNoDocuments)
func emptyFindResponse(ns string) bson.D {
	return mtest.CreateCursorResponse(0, mockDB+"."+ns, mtest.FirstBatch)
}

// countResponse answers a CountDocuments aggregate
func countResponse(ns string, n int) bson.D {
	return mtest.CreateCursorResponse(0, mockDB+"."+ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(n)}})
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return body
}
