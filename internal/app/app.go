package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"assignment-service/internal/assignment"
	"assignment-service/internal/config"
	"assignment-service/internal/db"
	"assignment-service/internal/event"
	"assignment-service/internal/grade"
	"assignment-service/internal/health"
	"assignment-service/internal/identity"
	"assignment-service/internal/kafka"
	"assignment-service/internal/logger"
	"assignment-service/internal/messaging"
	"assignment-service/internal/metrics"
	"assignment-service/internal/middleware"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

type App struct {
	config *config.Config
	router chi.Router
	server *http.Server
	logger *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env, "store", cfg.Store.Driver, "identity", cfg.Identity.Mode)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	// Store selection: memory is the default, postgres is the injected
	// persistent alternative.
	var (
		userRepo       user.Repository
		assignmentRepo assignment.Repository
	)
	switch cfg.Store.Driver {
	case "postgres":
		database := db.New(cfg.Database)
		if err := db.RunMigrations(context.Background(), database, (*user.User)(nil), (*assignment.Assignment)(nil)); err != nil {
			log.Fatal("failed to run migrations:", err)
		}
		userRepo = user.NewRepository(database)
		assignmentRepo = assignment.NewRepository(database)
	default:
		userRepo = user.NewMemoryRepository()
		assignmentRepo = assignment.NewMemoryRepository()
		if cfg.Store.Seed {
			if err := SeedDemoData(context.Background(), userRepo, assignmentRepo); err != nil {
				log.Fatal("failed to seed demo data:", err)
			}
			slogLogger.Info("demo data seeded")
		}
	}

	// Event producer setup (optional)
	var producer event.Producer
	switch cfg.Events.Backend {
	case "nats":
		p, err := messaging.NewProducer(cfg.Events.NATS.URL, cfg.Events.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			producer = p
		}
	case "kafka":
		p, err := kafka.NewProducer(cfg.Events.Kafka.Brokers, cfg.Events.Kafka.Topic, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize kafka producer", "error", err)
		} else {
			producer = p
		}
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = metrics.NewMock()
	}

	// Identity resolution: header mode trusts the userId header, token mode
	// expects a bearer JWT. Swapping modes changes nothing downstream.
	var resolver identity.Resolver
	switch cfg.Identity.Mode {
	case "token":
		resolver = identity.NewTokenResolver(userRepo, cfg.Identity.Secret)
	default:
		resolver = identity.NewHeaderResolver(userRepo)
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no identity required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	userService := user.NewService(userRepo, producer, slogLogger)
	assignmentService := assignment.NewService(assignmentRepo, producer, slogLogger)
	gradeService := grade.NewService(assignmentRepo, cfg.Grading.AllowRegrade, producer, slogLogger)

	userHandler := user.NewHandler(userService, slogLogger, m)
	assignmentHandler := assignment.NewHandler(assignmentService, slogLogger, m)
	gradeHandler := grade.NewHandler(gradeService, assignmentService, slogLogger, m)

	// All domain routes get identity resolution; role guards are attached
	// per route by the handlers.
	app.router.Group(func(r chi.Router) {
		r.Use(identity.Middleware(resolver, slogLogger))
		userHandler.RegisterRoutes(r)
		assignmentHandler.RegisterRoutes(r)
		gradeHandler.RegisterRoutes(r)
	})

	// Token issuing only makes sense in token mode
	if cfg.Identity.Mode == "token" {
		ttl := time.Duration(cfg.Identity.TokenTTLMinutes) * time.Minute
		identityHandler := identity.NewHandler(userRepo, cfg.Identity.Secret, ttl, slogLogger)
		identityHandler.RegisterRoutes(app.router)
	}

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", a.config.Server.Port),
		Handler: a.router,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	return a.server.Shutdown(ctx)
}
