package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/basetrack/internal/catalog"
	"github.com/localnerve/basetrack/internal/config"
	"github.com/localnerve/basetrack/internal/database"
	"github.com/localnerve/basetrack/internal/handlers"
	"github.com/localnerve/basetrack/internal/middleware"
	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/services"

	_ "github.com/localnerve/basetrack/docs/api" // Swagger docs
)

// @title Basetrack API
// @version 1.0.0
// @description Per-user progress tracking for base buildings, hero rosters and research
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/basetrack
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gameCatalog, err := catalog.Default()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	verifier, err := services.NewTokenVerifier(cfg.AuthSecret, cfg.AuthIssuer)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.SeedCatalog(context.Background(), db, gameCatalog); err != nil {
		log.Fatalf("Failed to seed hero catalog: %v", err)
	}

	// Services
	store := database.NewStore(db)
	gate := services.NewAccessGate(store, cfg.OwnerColumn)
	settingsOpts := []services.SettingsOption{services.WithOptimisticWrites(cfg.OptimisticWrites)}
	history := services.NewHistory(gate)
	if cfg.WriteLog {
		settingsOpts = append(settingsOpts, services.WithHistory(history))
	}
	buildings := services.NewSettingsStore(gate, models.TableBuildingLevels, settingsOpts...)
	teams := services.NewSettingsStore(gate, models.TableTeamSettings, settingsOpts...)
	research := services.NewSettingsStore(gate, models.TableResearchLevels, settingsOpts...)
	roster := services.NewRosterRepository(gate)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("basetrack")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health
	health := &handlers.HealthHandler{Config: cfg, DB: store}
	app.Get("/health", health.GetHealth)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	handlers.Register(api, middleware.AuthUser(verifier), handlers.Set{
		Settings: handlers.NewSettingsHandler(buildings, teams, research),
		Roster:   &handlers.RosterHandler{Roster: roster},
		Tracking: &handlers.TrackingHandler{
			Buildings: services.NewBuildingTracking(gate),
			Research:  services.NewResearchTracking(gate),
		},
		Progress: &handlers.ProgressHandler{
			Dashboard: services.NewDashboard(gameCatalog, roster, buildings, teams, research),
			Series:    services.NewSeriesResolver(buildings, gameCatalog.AliasTable()),
			Catalog:   gameCatalog,
		},
		History: &handlers.HistoryHandler{History: history},
	})

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s (owner column %s, optimistic writes %t)",
		port, gate.OwnerColumn(), cfg.OptimisticWrites)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
