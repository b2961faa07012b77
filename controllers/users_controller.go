package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
	utils "github.com/kevin/event-manager-go/utils"
)

// ---------------- PROFILE ----------------
func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"_id": userID}).
			Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"id":        user.ID.Hex(),
				"email":     user.Email,
				"role":      user.Role,
				"createdAt": user.CreatedAt,
			},
		})
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON in request body"})
			return
		}

		if input.Email == "" && input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provide email or password to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		update := bson.M{"updated_at": time.Now()}

		if input.Email != "" {
			if err := utils.ValidateEmail(input.Email); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			email := strings.ToLower(strings.TrimSpace(input.Email))

			// email must stay unique across other users
			var existing models.User
			if err := col.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil && existing.ID != userID {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email is already taken"})
				return
			}
			update["email"] = email
		}

		if input.Password != "" {
			if err := utils.ValidatePassword(input.Password); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			hash, err := utils.HashPassword(input.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating profile"})
				return
			}
			update["password"] = hash
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating profile"})
			return
		}

		var updated models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile updated successfully",
			"data": gin.H{
				"id":    updated.ID.Hex(),
				"email": updated.Email,
				"role":  updated.Role,
			},
		})
	}
}

// ---------------- MY REGISTRATIONS ----------------
func GetUserRegistrations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		page, limit, skip := parsePagination(c)

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{"user_id": userID}
		total, err := db.Collection("registrations").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching registrations"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "registered_at", Value: -1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit))

		cursor, err := db.Collection("registrations").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching registrations"})
			return
		}

		registrations := []models.Registration{}
		if err := cursor.All(ctx, &registrations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching registrations"})
			return
		}

		// Populate each registration with its event
		for i := range registrations {
			var event models.Event
			err := db.Collection("events").
				FindOne(ctx, bson.M{"_id": registrations[i].EventID}).
				Decode(&event)
			if err == nil {
				registrations[i].Event = &event
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(registrations),
			"total":   total,
			"page":    page,
			"pages":   totalPages(total, limit),
			"data":    registrations,
		})
	}
}
