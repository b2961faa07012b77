package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/kevin/event-manager-go/config"
	models "github.com/kevin/event-manager-go/models"
	utils "github.com/kevin/event-manager-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		var input struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			DateTime    string `json:"dateTime"`
			City        string `json:"city"`
			Address     string `json:"address"`
			Capacity    int    `json:"capacity"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON in request body"})
			return
		}

		var dateTime time.Time
		if input.DateTime != "" {
			dateTime, err = utils.ParseDateTime(input.DateTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date and time"})
				return
			}
		}

		fields := utils.EventFields{
			Title:       input.Title,
			Description: input.Description,
			DateTime:    dateTime,
			City:        input.City,
			Address:     input.Address,
			Capacity:    input.Capacity,
		}
		if err := utils.ValidateEventFields(fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		now := time.Now()
		event := models.Event{
			ID:          primitive.NewObjectID(),
			Title:       strings.TrimSpace(input.Title),
			Description: strings.TrimSpace(input.Description),
			DateTime:    dateTime,
			City:        strings.TrimSpace(input.City),
			Address:     strings.TrimSpace(input.Address),
			Capacity:    input.Capacity,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while creating event"})
			return
		}

		event.Registered = 0
		event.AvailableSpots = int64(event.Capacity)

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Event created successfully", "data": event})
	}
}

// ---------------- LIST ----------------
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, skip := parsePagination(c)

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			regex := bson.M{"$regex": search, "$options": "i"}
			filter["$or"] = []bson.M{
				{"title": regex},
				{"city": regex},
				{"description": regex},
			}
		}

		total, err := db.Collection("events").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching events"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit))

		cursor, err := db.Collection("events").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching events"})
			return
		}

		events := []models.Event{}
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching events"})
			return
		}

		// --- Enrich with registration counts and organizer info ---
		for i := range events {
			registered, err := countRegistrations(ctx, cfg, events[i].ID)
			if err == nil {
				events[i].Registered = registered
				events[i].AvailableSpots = models.AvailableSpots(events[i].Capacity, registered)
			}
			events[i].Organizer = lookupUserInfo(ctx, cfg, events[i].CreatedBy)
		}

		// --- ETag from the most recently updated event on the page, plus
		// the per-event registration counts the payload embeds ---
		if len(events) > 0 {
			latest := events[0]
			counts := make([]string, len(events))
			for i, ev := range events {
				if ev.UpdatedAt.After(latest.UpdatedAt) {
					latest = ev
				}
				counts[i] = strconv.FormatInt(ev.Registered, 10)
			}
			etag := utils.GenerateETag(latest.ID, latest.UpdatedAt, strings.Join(counts, ","))
			if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", etag)
			c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(events),
			"total":   total,
			"page":    page,
			"pages":   totalPages(total, limit),
			"data":    events,
		})
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		registered, err := countRegistrations(ctx, cfg, event.ID)
		if err == nil {
			event.Registered = registered
			event.AvailableSpots = models.AvailableSpots(event.Capacity, registered)
		}
		event.Organizer = lookupUserInfo(ctx, cfg, event.CreatedBy)

		// Route is public, but a valid bearer token reveals whether the
		// caller is registered. Invalid tokens are simply ignored here.
		caller := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), cfg.JWTSecret); err == nil {
				if uid, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
					caller = uid.Hex()
					err := db.Collection("registrations").
						FindOne(ctx, bson.M{"user_id": uid, "event_id": event.ID}).Err()
					event.IsUserRegistered = err == nil
				}
			}
		}

		// The payload embeds the live registration count and a per-caller
		// flag, so both feed the validator and the response varies by caller
		etag := utils.GenerateETag(event.ID, event.UpdatedAt,
			strconv.FormatInt(event.Registered, 10), caller)
		c.Header("Vary", "Authorization")
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event ID format"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}

		// Organizers can only update their own events
		if c.GetString("role") == models.RoleOrganizer && existing.CreatedBy.Hex() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only update your own events"})
			return
		}

		var input struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			DateTime    *string `json:"dateTime"`
			City        *string `json:"city"`
			Address     *string `json:"address"`
			Capacity    *int    `json:"capacity"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON in request body"})
			return
		}

		update := bson.M{"updated_at": time.Now()}

		// String fields are re-validated with the creation rules, so an
		// update cannot blank out a required field
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if len(title) < 3 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title must be at least 3 characters"})
				return
			}
			update["title"] = title
		}
		if input.Description != nil {
			description := strings.TrimSpace(*input.Description)
			if len(description) < 10 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Description must be at least 10 characters"})
				return
			}
			update["description"] = description
		}
		if input.City != nil {
			city := strings.TrimSpace(*input.City)
			if len(city) < 2 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "City must be at least 2 characters"})
				return
			}
			update["city"] = city
		}
		if input.Address != nil {
			address := strings.TrimSpace(*input.Address)
			if len(address) < 5 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Address must be at least 5 characters"})
				return
			}
			update["address"] = address
		}
		if input.DateTime != nil {
			parsed, err := utils.ParseDateTime(*input.DateTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date and time"})
				return
			}
			if !parsed.After(time.Now()) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Event date must be in the future"})
				return
			}
			update["date_time"] = parsed
		}
		if input.Capacity != nil {
			if *input.Capacity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Capacity must be a positive whole number"})
				return
			}
			update["capacity"] = *input.Capacity
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No valid fields provided for update"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating event"})
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating event"})
			return
		}
		updated.Organizer = lookupUserInfo(ctx, cfg, updated.CreatedBy)
		if registered, err := countRegistrations(ctx, cfg, updated.ID); err == nil {
			updated.Registered = registered
			updated.AvailableSpots = models.AvailableSpots(updated.Capacity, registered)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event updated successfully", "data": updated})
	}
}

// ---------------- PARTICIPANTS ----------------
func GetEventParticipants(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event ID format"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var event models.Event
		if err := db.Collection("events").FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}

		if c.GetString("role") == models.RoleOrganizer && event.CreatedBy.Hex() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only view participants of your own events"})
			return
		}

		page, limit, skip := parsePagination(c)

		filter := bson.M{"event_id": eventID}
		total, err := db.Collection("registrations").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching participants"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "registered_at", Value: -1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit))

		cursor, err := db.Collection("registrations").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching participants"})
			return
		}

		registrations := []models.Registration{}
		if err := cursor.All(ctx, &registrations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching participants"})
			return
		}

		for i := range registrations {
			registrations[i].User = lookupUserInfo(ctx, cfg, registrations[i].UserID)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"event":   event.Title,
			"count":   len(registrations),
			"total":   total,
			"page":    page,
			"pages":   totalPages(total, limit),
			"data":    registrations,
		})
	}
}

// ---------------- IMAGE UPLOAD ----------------
func UploadEventImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event ID format"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}

		if c.GetString("role") == models.RoleOrganizer && existing.CreatedBy.Hex() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only update your own events"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadToCloudinary(file, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Image upload failed"})
			return
		}

		// Replace, don't accumulate: drop the previous poster if present
		if existing.ImageURL != "" {
			if err := utils.DeleteFromCloudinary(existing.ImageURL); err != nil {
				logrus.Warnf("failed to delete old event image: %v", err)
			}
		}

		update := bson.M{"image_url": url, "updated_at": time.Now()}
		if _, err := col.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Event image updated successfully",
			"data":    gin.H{"imageUrl": url},
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event ID format"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var event models.Event
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("events").
			FindOne(ctx, bson.M{"_id": eventID}).
			Decode(&event)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}

		if err := deleteEventCascade(ctx, cfg, &event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while deleting event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event and all related registrations deleted"})
	}
}

// deleteEventCascade removes an event, all registrations referencing it and
// its Cloudinary image. Shared by the direct admin delete and the approved
// delete-request flow.
func deleteEventCascade(ctx context.Context, cfg *config.Config, event *models.Event) error {
	db := cfg.MongoClient.Database(cfg.DBName)

	if _, err := db.Collection("events").DeleteOne(ctx, bson.M{"_id": event.ID}); err != nil {
		return err
	}
	if _, err := db.Collection("registrations").DeleteMany(ctx, bson.M{"event_id": event.ID}); err != nil {
		return err
	}

	if event.ImageURL != "" {
		if err := utils.DeleteFromCloudinary(event.ImageURL); err != nil {
			logrus.Warnf("failed to delete image for event %s: %v", event.ID.Hex(), err)
		}
	}

	return nil
}
