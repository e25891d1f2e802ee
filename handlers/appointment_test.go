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
	gcal "google.golang.org/api/calendar/v3"

	"techvisit/models"
)

// spyAppointmentService records calls so handler tests can assert that
// validation failures never reach the service layer.
type spyAppointmentService struct {
	bookCalls   int
	manualCalls int
	listCalls   int
}

func (s *spyAppointmentService) Book(ctx context.Context, in models.BookingInput) (string, error) {
	s.bookCalls++
	return "evt-1", nil
}

func (s *spyAppointmentService) CreateManualEvent(ctx context.Context, in models.ManualEventInput) (*gcal.Event, error) {
	s.manualCalls++
	return &gcal.Event{Id: "evt-2", Summary: in.Title}, nil
}

func (s *spyAppointmentService) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.Appointment, error) {
	s.listCalls++
	return []models.Appointment{}, nil
}

type stubAvailabilityService struct {
	calls int
}

func (s *stubAvailabilityService) AvailableSlots(ctx context.Context, start, end time.Time) ([]string, error) {
	s.calls++
	return []string{"2026-03-02T09:00:00Z"}, nil
}

func setupRouter(spy *spyAppointmentService, avail *stubAvailabilityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	apptHandler := NewAppointmentHandler(spy, zap.NewNop())
	availHandler := NewAvailabilityHandler(avail, zap.NewNop())
	r.POST("/api/appointments", apptHandler.CreateAppointment)
	r.GET("/api/appointments/availability", availHandler.GetAvailability)
	return r
}

func TestCreateAppointmentMissingPhone(t *testing.T) {
	spy := &spyAppointmentService{}
	router := setupRouter(spy, &stubAvailabilityService{})

	body := `{"name":"Ana","email":"ana@example.com","description":"router","dateTime":"2026-03-02T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, spy.bookCalls, "validation failures must not reach the service")
}

func TestCreateAppointmentOK(t *testing.T) {
	spy := &spyAppointmentService{}
	router := setupRouter(spy, &stubAvailabilityService{})

	body := `{"name":"Ana","email":"ana@example.com","phone":"555","description":"router","dateTime":"2026-03-02T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"eventId":"evt-1"`)
	assert.Equal(t, 1, spy.bookCalls)
}

func TestGetAvailabilityRequiresRange(t *testing.T) {
	avail := &stubAvailabilityService{}
	router := setupRouter(&spyAppointmentService{}, avail)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/availability?start=2026-03-02T00:00:00Z", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, avail.calls)
}

func TestGetAvailabilityOK(t *testing.T) {
	avail := &stubAvailabilityService{}
	router := setupRouter(&spyAppointmentService{}, avail)

	req := httptest.NewRequest(http.MethodGet,
		"/api/appointments/availability?start=2026-03-02T00:00:00Z&end=2026-03-03T00:00:00Z", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2026-03-02T09:00:00Z")
	assert.Equal(t, 1, avail.calls)
}
