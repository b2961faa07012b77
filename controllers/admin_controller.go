package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
)

// ---------------- LIST USERS ----------------
func GetAllUsers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		// Password hashes stay out via the model's json:"-" tag
		users := []models.User{}
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "data": users})
	}
}

// ---------------- MAKE SUPER ADMIN ----------------
func MakeSuperAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID format"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if user.Role == models.RoleSuperAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User is already a super_admin"})
			return
		}

		var updated models.User
		err = col.FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"role": models.RoleSuperAdmin, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("User %s is now super_admin", updated.Email),
			"data": gin.H{
				"id":    updated.ID.Hex(),
				"email": updated.Email,
				"role":  updated.Role,
			},
		})
	}
}
