package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sdianka/portfolio/internal/api/handlers"
	"github.com/sdianka/portfolio/internal/auth"
	"github.com/sdianka/portfolio/internal/monitoring"
	"github.com/sdianka/portfolio/internal/services"
	"github.com/sdianka/portfolio/internal/websocket"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	Users     services.UserServiceProvider
	Projects  services.ProjectServiceProvider
	Catalog   services.CatalogServiceProvider
	Messages  services.MessageServiceProvider
	Events    services.EventServiceProvider
	Dashboard services.DashboardServiceProvider

	Tokens       *auth.Manager
	Hub          *websocket.Hub
	ContactLimit *RateLimiter

	Metrics  *monitoring.Collector
	Gatherer prometheus.Gatherer

	AllowedOrigins []string
	SecureCookies  bool
	StaticDir      string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	if d.Metrics != nil {
		r.Use(metricsMiddleware(d.Metrics))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Users, d.Tokens, d.SecureCookies)
	projectHandler := handlers.NewProjectHandler(d.Projects)
	serviceHandler := handlers.NewServiceHandler(d.Catalog)
	var recorder handlers.MessageRecorder
	if d.Metrics != nil {
		recorder = d.Metrics
	}
	messageHandler := handlers.NewMessageHandler(d.Messages, recorder)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard)
	eventHandler := handlers.NewEventHandler(d.Events)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.AllowedOrigins)

	requireAuth := d.Tokens.Middleware()
	contactLimit := func(next http.Handler) http.Handler { return next }
	if d.ContactLimit != nil {
		contactLimit = d.ContactLimit.Middleware
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.GetMe)
				r.Post("/password", authHandler.ChangePassword)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.GetAll)
			r.Get("/{id}", projectHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", projectHandler.Create)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", serviceHandler.GetAll)
			r.Get("/{id}", serviceHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", serviceHandler.Create)
				r.Put("/reorder", serviceHandler.Reorder)
				r.Put("/{id}", serviceHandler.Update)
				r.Patch("/{id}", serviceHandler.Update)
				r.Delete("/{id}", serviceHandler.Delete)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.With(contactLimit).Post("/", messageHandler.Create)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", messageHandler.GetAll)
				r.Post("/{id}/read", messageHandler.SetRead)
				r.Delete("/{id}", messageHandler.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/dashboard/stats", dashboardHandler.Stats)
			r.Get("/events", eventHandler.GetRecent)
			r.Get("/ws", wsHandler.Serve)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not found"}`))
		})
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", monitoring.Handler(d.Gatherer))
	}

	if d.StaticDir != "" {
		r.Handle("/*", spaHandler(d.StaticDir))
	}

	return r
}
