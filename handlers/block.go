package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"techvisit/models"
	blockSvc "techvisit/services/block"
	calendarSvc "techvisit/services/calendar"
	"techvisit/utils"
)

// BlockHandler serves the administrator block/unblock surface.
type BlockHandler struct {
	Registry blockSvc.Registry
	Logger   *zap.Logger
}

func NewBlockHandler(registry blockSvc.Registry, logger *zap.Logger) *BlockHandler {
	return &BlockHandler{Registry: registry, Logger: logger}
}

// BlockSlot handles POST /api/appointments/block.
func (h *BlockHandler) BlockSlot(c *gin.Context) {
	var input models.BlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateTime is required", "message": err.Error()})
		return
	}

	instant, err := utils.ParseInstant(input.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateTime", "message": err.Error()})
		return
	}

	eventID, err := h.Registry.Block(c.Request.Context(), instant, input.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to block slot")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "eventId": eventID})
}

// UnblockSlot handles DELETE /api/appointments/block.
func (h *BlockHandler) UnblockSlot(c *gin.Context) {
	var input models.UnblockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId is required", "message": err.Error()})
		return
	}

	if err := h.Registry.Unblock(c.Request.Context(), input.EventID); err != nil {
		h.writeError(c, err, "Failed to unblock slot")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListBlocked handles GET /api/appointments/block?start=&end=.
func (h *BlockHandler) ListBlocked(c *gin.Context) {
	startParam := c.Query("start")
	endParam := c.Query("end")
	if startParam == "" || endParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required"})
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

	blocked, err := h.Registry.ListBlocked(c.Request.Context(), start, end)
	if err != nil {
		h.writeError(c, err, "Failed to list blocked slots")
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// writeError maps registry failures onto HTTP statuses. Blocking has no
// fallback path, so calendar write failures surface to the caller.
func (h *BlockHandler) writeError(c *gin.Context, err error, message string) {
	var regErr *blockSvc.RegistryError
	var apiErr *googleapi.Error

	switch {
	case errors.As(err, &regErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": regErr.Message})
	case errors.Is(err, calendarSvc.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google Calendar is not connected"})
	case errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	default:
		h.Logger.Error(message, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
	}
}
