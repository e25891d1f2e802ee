// File: techvisit/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techvisit/config"
	"techvisit/database/repository/fallback"
	"techvisit/handlers"
	"techvisit/middleware"
	"techvisit/routes"
	appointmentSvc "techvisit/services/appointment"
	blockSvc "techvisit/services/block"
	calendarSvc "techvisit/services/calendar"
	"techvisit/services/notification"
	"techvisit/services/schedule"
	"techvisit/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	cacheClient := utils.GetCacheClient()

	location, err := time.LoadLocation(config.AppConfig.CalendarTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid CALENDAR_TIMEZONE %q: %v", config.AppConfig.CalendarTimezone, err)
	}

	// External calendar gateway. Missing credentials leave the service in the
	// unauthorized state and everything degrades to the fallback store.
	googleCalendar := calendarSvc.NewGoogleService(
		config.AppConfig.GoogleOAuthCredentials,
		config.AppConfig.GoogleOAuthTokens,
		config.AppConfig.OAuthRedirectURL,
		logger,
	)

	// Process-lifetime fallback store.
	store := fallback.NewMemoryStore()

	utils.StartHealthMonitor(cacheClient, googleCalendar)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	availabilityService := &schedule.DefaultAvailabilityService{
		Calendar:   googleCalendar,
		Store:      store,
		CalendarID: config.AppConfig.CalendarID,
		Location:   location,
		Logger:     logger,
		Cache:      cacheClient,
		CacheTTL:   time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}

	blockRegistry := &blockSvc.DefaultRegistry{
		Calendar:   googleCalendar,
		CalendarID: config.AppConfig.CalendarID,
		Timezone:   config.AppConfig.CalendarTimezone,
		Logger:     logger,
		Cache:      cacheClient,
	}

	appointmentService := &appointmentSvc.DefaultService{
		Calendar:   googleCalendar,
		Store:      store,
		Notifier:   &notification.EmailPlaceholder{Logger: logger},
		CalendarID: config.AppConfig.CalendarID,
		Timezone:   config.AppConfig.CalendarTimezone,
		Logger:     logger,
		Cache:      cacheClient,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService, logger),
		Appointments: handlers.NewAppointmentHandler(appointmentService, logger),
		Blocks:       handlers.NewBlockHandler(blockRegistry, logger),
		Auth:         handlers.NewAuthHandler(googleCalendar, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	if !googleCalendar.Authorized() {
		logger.Warn("Google Calendar not connected; bookings will be stored locally until an admin completes the consent flow",
			zap.String("connect", "/api/auth/google-calendar"))
	}

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
