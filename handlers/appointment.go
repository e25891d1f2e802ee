package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techvisit/models"
	appointmentSvc "techvisit/services/appointment"
	"techvisit/utils"
)

// AppointmentHandler serves booking submission, manual events, and the events
// listing.
type AppointmentHandler struct {
	Service appointmentSvc.Service
	Logger  *zap.Logger
}

func NewAppointmentHandler(svc appointmentSvc.Service, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// CreateAppointment handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields required", "message": err.Error()})
		return
	}

	eventID, err := h.Service.Book(c.Request.Context(), input)
	if err != nil {
		var vErr *appointmentSvc.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields required", "message": vErr.Error()})
			return
		}
		h.Logger.Error("Failed to create appointment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "eventId": eventID})
}

// CreateManualEvent handles POST /api/appointments/manual (admin).
func (h *AppointmentHandler) CreateManualEvent(c *gin.Context) {
	var input models.ManualEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, start and end date/time are required", "message": err.Error()})
		return
	}

	event, err := h.Service.CreateManualEvent(c.Request.Context(), input)
	if err != nil {
		var vErr *appointmentSvc.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.Logger.Error("Failed to create manual event", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "eventId": event.Id, "event": event})
}

// ListEvents handles GET /api/appointments/events?timeMin=&timeMax=.
func (h *AppointmentHandler) ListEvents(c *gin.Context) {
	var timeMin, timeMax time.Time
	if v := c.Query("timeMin"); v != "" {
		t, err := utils.ParseInstant(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timeMin", "message": err.Error()})
			return
		}
		timeMin = t
	}
	if v := c.Query("timeMax"); v != "" {
		t, err := utils.ParseInstant(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timeMax", "message": err.Error()})
			return
		}
		timeMax = t
	}

	events, err := h.Service.ListEvents(c.Request.Context(), timeMin, timeMax)
	if err != nil {
		h.Logger.Error("Failed to list events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
