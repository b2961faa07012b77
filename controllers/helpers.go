package controllers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
)

// parsePagination reads page/limit query params with the defaults the API
// documents (page 1, limit 10, limit capped at 100)
func parsePagination(c *gin.Context) (page, limit, skip int) {
	page = 1
	limit = 10
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	skip = (page - 1) * limit
	return page, limit, skip
}

// totalPages computes the page count for a paginated envelope
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// lookupUserInfo fetches the email/role projection used to populate
// references in responses. Returns nil when the user no longer exists.
func lookupUserInfo(ctx context.Context, cfg *config.Config, id primitive.ObjectID) *models.UserInfo {
	var info models.UserInfo
	err := cfg.MongoClient.Database(cfg.DBName).
		Collection("users").
		FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"email": 1, "role": 1})).
		Decode(&info)
	if err != nil {
		return nil
	}
	return &info
}

// countRegistrations returns the current registration count for an event
func countRegistrations(ctx context.Context, cfg *config.Config, eventID primitive.ObjectID) (int64, error) {
	return cfg.MongoClient.Database(cfg.DBName).
		Collection("registrations").
		CountDocuments(ctx, bson.M{"event_id": eventID})
}
