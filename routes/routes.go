package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"techvisit/handlers"
	"techvisit/middleware"
	"techvisit/utils"
)

// RegisterAppointmentRoutes registers the customer-facing booking endpoints
// and the administrator calendar surface.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		// Public endpoints: customers browse availability and submit bookings.
		api.GET("/availability", hb.Availability.GetAvailability)
		api.GET("/events", hb.Appointments.ListEvents)
		api.POST("", hb.Appointments.CreateAppointment)

		// Administrator endpoints require an admin session.
		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.GET("/block", hb.Blocks.ListBlocked)
		admin.POST("/block", hb.Blocks.BlockSlot)
		admin.DELETE("/block", hb.Blocks.UnblockSlot)
		admin.POST("/manual", hb.Appointments.CreateManualEvent)
	}
}

// RegisterAuthRoutes registers the admin login and the Google Calendar
// consent flow. The callback stays public: Google redirects the browser
// there without our admin token.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.Auth.AdminLogin)

	auth := r.Group("/api/auth/google-calendar")
	{
		auth.GET("", middleware.AdminAuthMiddleware(), hb.Auth.ConnectCalendar)
		auth.GET("/callback", hb.Auth.CalendarCallback)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires CORS and all endpoint groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAppointmentRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
}
