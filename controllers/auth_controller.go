package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
	utils "github.com/kevin/event-manager-go/utils"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---------------- REGISTER ----------------
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON in request body"})
			return
		}

		if err := utils.ValidateEmail(input.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := utils.ValidatePassword(input.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// --- Reject duplicate email ---
		err := col.FindOne(ctx, bson.M{"email": email}).Err()
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User with this email already exists"})
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Email:     email,
			Password:  hash,
			Role:      models.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			// unique index may still catch a concurrent duplicate
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
			return
		}

		token, err := utils.GenerateToken(user.ID.Hex(), user.Role, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
			return
		}

		// Welcome email (non-blocking)
		utils.NotifyAsync(user.Email,
			"Welcome to EventManager!",
			"<h2>Welcome to EventManager!</h2><p>Your account has been created successfully.</p>")

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data": gin.H{
				"id":    user.ID.Hex(),
				"email": user.Email,
				"role":  user.Role,
				"token": token,
			},
		})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON in request body"})
			return
		}

		if err := utils.ValidateEmail(input.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is required"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}

		if !utils.CheckPassword(user.Password, input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}

		token, err := utils.GenerateToken(user.ID.Hex(), user.Role, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data": gin.H{
				"id":    user.ID.Hex(),
				"email": user.Email,
				"role":  user.Role,
				"token": token,
			},
		})
	}
}
