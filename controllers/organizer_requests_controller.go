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
	utils "github.com/kevin/event-manager-go/utils"
)

// ---------------- SUBMIT ----------------
func SubmitOrganizerRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		if role := c.GetString("role"); role != models.RoleUser {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("You already have the role '%s'", role)})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("organizer_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// one pending request per user at a time
		err = col.FindOne(ctx, bson.M{"user_id": userID, "status": models.StatusPending}).Err()
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "You already have a pending request"})
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		request := models.OrganizerRequest{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Status:    models.StatusPending,
			CreatedAt: time.Now(),
		}

		if _, err := col.InsertOne(ctx, request); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Organizer request submitted. Wait for admin approval",
			"data":    request,
		})
	}
}

// ---------------- MY STATUS ----------------
func GetMyRequestStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var request models.OrganizerRequest
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("organizer_requests").
			FindOne(ctx, bson.M{"user_id": userID}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).
			Decode(&request)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No request found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"status": request.Status, "createdAt": request.CreatedAt},
		})
	}
}

// ---------------- LIST (admin) ----------------
func GetOrganizerRequests(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, skip := parsePagination(c)

		col := cfg.MongoClient.Database(cfg.DBName).Collection("organizer_requests")
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

		requests := []models.OrganizerRequest{}
		if err := cursor.All(ctx, &requests); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		for i := range requests {
			requests[i].User = lookupUserInfo(ctx, cfg, requests[i].UserID)
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
func ApproveOrganizerRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request ID format"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		col := db.Collection("organizer_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var request models.OrganizerRequest
		if err := col.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Request not found"})
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

		// Role change is the point of the approval; email afterwards is
		// best-effort and never rolls it back
		var user models.User
		err = db.Collection("users").FindOneAndUpdate(ctx,
			bson.M{"_id": request.UserID},
			bson.M{"$set": bson.M{"role": models.RoleOrganizer, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&user)
		if err == nil {
			utils.NotifyAsync(user.Email,
				"Organizer Request Approved!",
				"<h2>Organizer Request Approved!</h2><p>You can now create and manage events.</p>")
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Request approved. User is now an organizer",
			"data":    request,
		})
	}
}

// ---------------- REJECT (admin) ----------------
func RejectOrganizerRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request ID format"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("organizer_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var request models.OrganizerRequest
		if err := col.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Request not found"})
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

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Request rejected", "data": request})
	}
}
