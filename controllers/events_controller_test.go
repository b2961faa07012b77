package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	models "github.com/kevin/event-manager-go/models"
)

func TestUpdateEventValidation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	now := time.Now()

	cases := []struct {
		name    string
		payload string
		message string
	}{
		{"blank title", `{"title": "  "}`, "Title must be at least 3 characters"},
		{"short title", `{"title": "Go"}`, "Title must be at least 3 characters"},
		{"blank description", `{"description": ""}`, "Description must be at least 10 characters"},
		{"blank city", `{"city": " "}`, "City must be at least 2 characters"},
		{"short address", `{"address": "abc"}`, "Address must be at least 5 characters"},
		{"zero capacity", `{"capacity": 0}`, "Capacity must be a positive whole number"},
		{"past date", `{"dateTime": "2020-01-01"}`, "Event date must be in the future"},
		{"empty body", `{}`, "No valid fields provided for update"},
	}

	for _, tc := range cases {
		mt.Run(tc.name, func(mt *mtest.T) {
			owner := primitive.NewObjectID()
			eventID := primitive.NewObjectID()
			r := gin.New()
			r.PUT("/api/events/:id", asUser(owner, models.RoleOrganizer), UpdateEvent(mockConfig(mt)))

			mt.AddMockResponses(findResponse("events", eventDoc(eventID, owner, 10, now)))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/events/"+eventID.Hex(), strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if body := decodeEnvelope(t, w); body.Message != tc.message {
				t.Errorf("got message %q, want %q", body.Message, tc.message)
			}
		})
	}
}

func TestDeleteEventCascade(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("registrations are removed with the event", func(mt *mtest.T) {
		admin := primitive.NewObjectID()
		eventID := primitive.NewObjectID()
		r := gin.New()
		r.DELETE("/api/events/:id", asUser(admin, models.RoleSuperAdmin), DeleteEvent(mockConfig(mt)))

		mt.AddMockResponses(
			findResponse("events", eventDoc(eventID, primitive.NewObjectID(), 10, time.Now())),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/events/"+eventID.Hex(), nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		deletes := 0
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "delete" {
				deletes++
			}
		}
		if deletes != 2 {
			t.Errorf("expected delete commands against events and registrations, saw %d", deletes)
		}
	})

	mt.Run("unknown event is not found", func(mt *mtest.T) {
		admin := primitive.NewObjectID()
		eventID := primitive.NewObjectID()
		r := gin.New()
		r.DELETE("/api/events/:id", asUser(admin, models.RoleSuperAdmin), DeleteEvent(mockConfig(mt)))

		mt.AddMockResponses(emptyFindResponse("events"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/events/"+eventID.Hex(), nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// The single-event validator folds in the live registration count, so a
// count change invalidates a cached response even though updated_at is
// untouched, while an unchanged document still short-circuits to 304.
func TestGetEventConditionalRead(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("registration count feeds the validator", func(mt *mtest.T) {
		owner := primitive.NewObjectID()
		eventID := primitive.NewObjectID()
		updatedAt := time.Now().Add(-time.Hour)
		doc := eventDoc(eventID, owner, 10, updatedAt)
		ownerDoc := bson.D{
			{Key: "_id", Value: owner},
			{Key: "email", Value: "organizer@example.com"},
			{Key: "role", Value: "organizer"},
		}

		r := gin.New()
		r.GET("/api/events/:id", GetEvent(mockConfig(mt)))

		get := func(count int, ifNoneMatch string) *httptest.ResponseRecorder {
			mt.AddMockResponses(
				findResponse("events", doc),
				countResponse("registrations", count),
				findResponse("users", ownerDoc),
			)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID.Hex(), nil)
			if ifNoneMatch != "" {
				req.Header.Set("If-None-Match", ifNoneMatch)
			}
			r.ServeHTTP(w, req)
			return w
		}

		first := get(0, "")
		if first.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", first.Code, first.Body.String())
		}
		etag := first.Header().Get("ETag")
		if etag == "" {
			t.Fatal("expected an ETag header")
		}
		if first.Header().Get("Vary") != "Authorization" {
			t.Errorf("expected Vary: Authorization, got %q", first.Header().Get("Vary"))
		}

		// someone registered since; the stale validator must not produce a 304
		changed := get(1, etag)
		if changed.Code != http.StatusOK {
			t.Fatalf("expected 200 after count change, got %d", changed.Code)
		}
		if changed.Header().Get("ETag") == etag {
			t.Error("etag did not change with the registration count")
		}

		unchanged := get(0, etag)
		if unchanged.Code != http.StatusNotModified {
			t.Fatalf("expected 304 for unchanged document, got %d: %s", unchanged.Code, unchanged.Body.String())
		}
	})
}
