package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techvisit/services/schedule"
	"techvisit/utils"
)

// AvailabilityHandler serves the open-slot computation.
type AvailabilityHandler struct {
	Service schedule.AvailabilityService
	Logger  *zap.Logger
}

func NewAvailabilityHandler(svc schedule.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

// GetAvailability handles GET /api/appointments/availability?start=&end=.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	startParam := c.Query("start")
	endParam := c.Query("end")
	if startParam == "" || endParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start and end dates required"})
		return
	}

	start, err := utils.ParseInstant(startParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date", "message": err.Error()})
		return
	}
	end, err := utils.ParseInstant(endParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date", "message": err.Error()})
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), start, end)
	if err != nil {
		h.Logger.Error("Failed to compute availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"availableSlots": slots})
}
