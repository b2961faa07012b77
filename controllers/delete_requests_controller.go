package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
)

// ---------------- SUBMIT ----------------
func SubmitDeleteRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
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

		if event.CreatedBy != organizerID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only request deletion of your own events"})
			return
		}

		col := db.Collection("event_delete_requests")

		// one pending request per event at a time
		err = col.FindOne(ctx, bson.M{"event_id": eventID, "status": models.StatusPending}).Err()
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "A pending delete request already exists for this event"})
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		request := models.EventDeleteRequest{
			ID:          primitive.NewObjectID(),
			EventID:     eventID,
			OrganizerID: organizerID,
			Status:      models.StatusPending,
			CreatedAt:   time.Now(),
		}

		if _, err := col.InsertOne(ctx, request); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Delete request submitted. Waiting for admin approval",
			"data":    request,
		})
	}
}

// ---------------- LIST (admin) ----------------
func GetDeleteRequests(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, skip := parsePagination(c)

		db := cfg.MongoClient.Database(cfg.DBName)
		col := db.Collection("event_delete_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit))

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		requests := []models.EventDeleteRequest{}
		if err := cursor.All(ctx, &requests); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		// Populate event summary and submitting organizer. The event may be
		// gone already when the request was approved earlier.
		for i := range requests {
			var event models.Event
			if err := db.Collection("events").FindOne(ctx, bson.M{"_id": requests[i].EventID}).Decode(&event); err == nil {
				requests[i].Event = &event
			}
			requests[i].Organizer = lookupUserInfo(ctx, cfg, requests[i].OrganizerID)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(requests),
			"total":   total,
			"page":    page,
			"pages":   totalPages(total, limit),
			"data":    requests,
		})
	}
}

// ---------------- APPROVE (admin) ----------------
func ApproveDeleteRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request ID format"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		col := db.Collection("event_delete_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var request models.EventDeleteRequest
		if err := col.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Delete request not found"})
			return
		}
		if models.Decided(request.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Request already %s", request.Status)})
			return
		}

		request.Status = models.StatusApproved
		if _, err := col.UpdateOne(ctx, bson.M{"_id": requestID}, bson.M{"$set": bson.M{"status": models.StatusApproved}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		var event models.Event
		if err := db.Collection("events").FindOne(ctx, bson.M{"_id": request.EventID}).Decode(&event); err == nil {
			if err := deleteEventCascade(ctx, cfg, &event); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Delete request approved. Event and registrations removed",
			"data":    request,
		})
	}
}

// ---------------- REJECT (admin) ----------------
func RejectDeleteRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request ID format"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("event_delete_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var request models.EventDeleteRequest
		if err := col.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Delete request not found"})
			return
		}
		if models.Decided(request.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Request already %s", request.Status)})
			return
		}

		request.Status = models.StatusRejected
		if _, err := col.UpdateOne(ctx, bson.M{"_id": requestID}, bson.M{"$set": bson.M{"status": models.StatusRejected}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delete request rejected", "data": request})
	}
}
