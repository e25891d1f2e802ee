package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"techvisit/models"
)

type fakeRegistry struct {
	blockCalls int
	unblockErr error
	blocked    []models.BlockedSlot
}

func (f *fakeRegistry) Block(ctx context.Context, instant time.Time, reason string) (string, error) {
	f.blockCalls++
	return "evt-1", nil
}

func (f *fakeRegistry) Unblock(ctx context.Context, eventID string) error {
	return f.unblockErr
}

func (f *fakeRegistry) ListBlocked(ctx context.Context, start, end time.Time) ([]models.BlockedSlot, error) {
	return f.blocked, nil
}

func setupBlockRouter(reg *fakeRegistry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBlockHandler(reg, zap.NewNop())
	r.GET("/api/appointments/block", h.ListBlocked)
	r.POST("/api/appointments/block", h.BlockSlot)
	r.DELETE("/api/appointments/block", h.UnblockSlot)
	return r
}

func TestBlockSlotRequiresDateTime(t *testing.T) {
	reg := &fakeRegistry{}
	router := setupBlockRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/block", strings.NewReader(`{"reason":"obras"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, reg.blockCalls)
}

func TestBlockSlotOK(t *testing.T) {
	reg := &fakeRegistry{}
	router := setupBlockRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/block",
		strings.NewReader(`{"dateTime":"2026-03-02T10:00:00Z"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"eventId":"evt-1"`)
}

func TestUnblockUnknownEventMapsNotFound(t *testing.T) {
	reg := &fakeRegistry{unblockErr: &googleapi.Error{Code: 404, Message: "Not Found"}}
	router := setupBlockRouter(reg)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/block",
		strings.NewReader(`{"eventId":"evt-missing"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBlockedRequiresRange(t *testing.T) {
	router := setupBlockRouter(&fakeRegistry{})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/block", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
