package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
)

// ---------------- REGISTER ----------------
func RegisterForEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event ID format"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var event models.Event
		if err := db.Collection("events").FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}

		regCol := db.Collection("registrations")

		err = regCol.FindOne(ctx, bson.M{"user_id": userID, "event_id": eventID}).Err()
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "You are already registered for this event"})
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while registering for event"})
			return
		}

		// Capacity check is read-then-write, not atomic: two concurrent
		// requests for the last spot can both pass. Accepted behavior, the
		// unique (user_id, event_id) index only guards against duplicates.
		currentCount, err := regCol.CountDocuments(ctx, bson.M{"event_id": eventID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while registering for event"})
			return
		}
		if currentCount >= int64(event.Capacity) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Event is full. No available spots"})
			return
		}

		registration := models.Registration{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			EventID:      eventID,
			RegisteredAt: time.Now(),
		}

		if _, err := regCol.InsertOne(ctx, registration); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "You are already registered for this event"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while registering for event"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Successfully registered for the event",
			"data":    registration,
		})
	}
}

// ---------------- CANCEL ----------------
func CancelRegistration(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event ID format"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := cfg.MongoClient.Database(cfg.DBName).
			Collection("registrations").
			DeleteOne(ctx, bson.M{"user_id": userID, "event_id": eventID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while cancelling registration"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Registration not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration cancelled successfully"})
	}
}
