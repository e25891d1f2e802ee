package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"techvisit/config"
	"techvisit/models"
	calendarSvc "techvisit/services/calendar"
	"techvisit/utils"
)

const oauthStateCookie = "oauth_state"

// adminSessionTTL bounds how long an admin portal token stays valid.
const adminSessionTTL = 12 * time.Hour

// AuthHandler serves the admin login and the Google Calendar consent flow.
type AuthHandler struct {
	Flow   *calendarSvc.GoogleService
	Logger *zap.Logger
}

func NewAuthHandler(flow *calendarSvc.GoogleService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Flow: flow, Logger: logger}
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input models.AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	hash := config.AppConfig.AdminPasswordHash
	if hash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := utils.GenerateAdminToken(adminSessionTTL)
	if err != nil {
		h.Logger.Error("Failed to mint admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ConnectCalendar handles GET /api/auth/google-calendar by redirecting the
// administrator to the Google consent screen.
func (h *AuthHandler) ConnectCalendar(c *gin.Context) {
	state := uuid.New().String()

	url, err := h.Flow.AuthURL(state)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google Calendar integration is not configured"})
		return
	}

	// The state round-trips via cookie and is checked in the callback.
	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// CalendarCallback handles GET /api/auth/google-calendar/callback.
func (h *AuthHandler) CalendarCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No code provided"})
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	if err := h.Flow.Exchange(c.Request.Context(), code); err != nil {
		h.Logger.Error("OAuth code exchange failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tokens"})
		return
	}

	h.Logger.Info("Google Calendar connected")
	c.Redirect(http.StatusTemporaryRedirect, "/admin")
}
