package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/sdianka/portfolio/internal/api"
	"github.com/sdianka/portfolio/internal/auth"
	"github.com/sdianka/portfolio/internal/config"
	"github.com/sdianka/portfolio/internal/database"
	"github.com/sdianka/portfolio/internal/logger"
	"github.com/sdianka/portfolio/internal/monitoring"
	"github.com/sdianka/portfolio/internal/services"
	"github.com/sdianka/portfolio/internal/websocket"
)

const hostSampleInterval = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db, eventService, hub)
	catalogService := services.NewCatalogService(db, eventService, hub)
	messageService := services.NewMessageService(db, eventService, hub)

	if err := userService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed the admin account")
	}

	// Set up and run the background host sampler
	sampler := monitoring.NewHostSampler(monitoring.GopsutilProbe, eventService, hostSampleInterval)
	go sampler.Run()
	dashboardService := services.NewDashboardService(db, eventService, sampler)

	// Set up and start the housekeeping scheduler
	housekeeper := monitoring.NewHousekeeper(messageService, eventService,
		cfg.HousekeepingCron, cfg.MessageRetentionDays, cfg.EventRetention)
	if err := housekeeper.Start(); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.HousekeepingCron).Msg("Failed to start housekeeping")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewCollector(registry)
	metrics.RegisterClientGauge(hub.ClientCount)

	contactLimit := api.NewRateLimiter(cfg.ContactRatePerMinute, time.Minute)
	contactLimit.OnReject(metrics.RecordRateLimited)

	// Set up router
	router := api.NewRouter(api.Deps{
		Users:          userService,
		Projects:       projectService,
		Catalog:        catalogService,
		Messages:       messageService,
		Events:         eventService,
		Dashboard:      dashboardService,
		Tokens:         auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		Hub:            hub,
		ContactLimit:   contactLimit,
		Metrics:        metrics,
		Gatherer:       registry,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SecureCookies:  cfg.IsProduction(),
		StaticDir:      cfg.StaticDir,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sampler.Stop()
	housekeeper.Stop()
	contactLimit.Stop()
	hub.Stop()

	log.Info().Msg("Server exiting")
}
