package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
	utils "github.com/kevin/event-manager-go/utils"
)

// AuthMiddleware verifies the bearer token and re-resolves the user from the
// database so tokens belonging to deleted accounts are rejected. On success
// it stashes user_id, email and role in the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. No token provided"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenStr, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
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
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found. Token is invalid"})
			return
		}

		c.Set("user_id", user.ID.Hex())
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireRoles gates a route to the given allow-list. Runs after
// AuthMiddleware; ownership checks stay in the individual handlers.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": fmt.Sprintf("Access denied. Role '%s' is not authorized", role),
		})
	}
}
