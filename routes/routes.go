package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/kevin/event-manager-go/config"
	controllers "github.com/kevin/event-manager-go/controllers"
	middleware "github.com/kevin/event-manager-go/middleware"
	models "github.com/kevin/event-manager-go/models"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	auth := middleware.AuthMiddleware(cfg)
	organizerOrAdmin := middleware.RequireRoles(models.RoleOrganizer, models.RoleSuperAdmin)

	api := r.Group("/api")

	// public
	api.POST("/auth/register", controllers.Register(cfg))
	api.POST("/auth/login", controllers.Login(cfg))

	users := api.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", controllers.GetProfile(cfg))
		users.PUT("/profile", controllers.UpdateProfile(cfg))
		users.GET("/registrations", controllers.GetUserRegistrations(cfg))
	}

	events := api.Group("/events")
	{
		// browsing is public
		events.GET("", controllers.ListEvents(cfg))
		events.GET("/:id", controllers.GetEvent(cfg))

		// organizer / admin
		events.POST("", auth, organizerOrAdmin, controllers.CreateEvent(cfg))
		events.PUT("/:id", auth, organizerOrAdmin, controllers.UpdateEvent(cfg))
		events.GET("/:id/participants", auth, organizerOrAdmin, controllers.GetEventParticipants(cfg))
		events.POST("/:id/image", auth, organizerOrAdmin, controllers.UploadEventImage(cfg))
		events.POST("/:id/delete-request", auth, middleware.RequireRoles(models.RoleOrganizer), controllers.SubmitDeleteRequest(cfg))

		// attendance
		events.POST("/:id/register", auth, controllers.RegisterForEvent(cfg))
		events.DELETE("/:id/register", auth, controllers.CancelRegistration(cfg))

		// admin only
		events.DELETE("/:id", auth, middleware.RequireRoles(models.RoleSuperAdmin), controllers.DeleteEvent(cfg))
	}

	organizer := api.Group("/organizer")
	organizer.Use(auth)
	{
		organizer.POST("/request", controllers.SubmitOrganizerRequest(cfg))
		organizer.GET("/request/status", controllers.GetMyRequestStatus(cfg))
	}

	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireRoles(models.RoleSuperAdmin))
	{
		admin.GET("/organizer-requests", controllers.GetOrganizerRequests(cfg))
		admin.POST("/organizer-requests/:id/approve", controllers.ApproveOrganizerRequest(cfg))
		admin.POST("/organizer-requests/:id/reject", controllers.RejectOrganizerRequest(cfg))

		admin.GET("/event-delete-requests", controllers.GetDeleteRequests(cfg))
		admin.POST("/event-delete-requests/:id/approve", controllers.ApproveDeleteRequest(cfg))
		admin.POST("/event-delete-requests/:id/reject", controllers.RejectDeleteRequest(cfg))

		admin.GET("/users", controllers.GetAllUsers(cfg))
		admin.POST("/users/:id/make-super-admin", controllers.MakeSuperAdmin(cfg))
	}
}
