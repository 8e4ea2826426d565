package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/cache"
	"github.com/BergomiStore/bergomi_store/internal/config"
	"github.com/BergomiStore/bergomi_store/internal/database"
	"github.com/BergomiStore/bergomi_store/internal/handler"
	"github.com/BergomiStore/bergomi_store/internal/middleware"
	"github.com/BergomiStore/bergomi_store/internal/repository"
	"github.com/BergomiStore/bergomi_store/internal/service"
)

// main is the entrypoint for the catalog REST API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateAPI(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting bergomi store api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	linkRepo := repository.NewContactLinkRepository(db)
	tokenRepo := repository.NewAdminTokenRepository(db)

	// 5. Initialize services, cached when Redis is reachable
	catalogSvc := service.NewCatalogService(accountRepo, nil)
	contactSvc := service.NewContactService(linkRepo, nil)
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable - running without cache")
		} else {
			defer redisClient.Close()
			catalogCache := cache.NewCatalogCache(redisClient, cfg.Cache.TTL)
			catalogSvc = service.NewCatalogService(accountRepo, catalogCache)
			contactSvc = service.NewContactService(linkRepo, catalogCache)
			log.Info().Dur("ttl", cfg.Cache.TTL).Msg("redis connected successfully")
		}
	}
	adminAuthSvc := service.NewAdminAuthService(tokenRepo, cfg.Admin.Token)

	// 6. Initialize middleware
	limiter := middleware.NewInvalidAuthRateLimiter(5, time.Minute)
	defer limiter.Close()

	// 7. Initialize handlers
	handlers := &handler.Handlers{
		Health:  handler.NewHealthHandler(),
		Account: handler.NewAccountHandler(catalogSvc),
		Contact: handler.NewContactHandler(contactSvc),
		Admin:   handler.NewAdminHandler(adminAuthSvc, limiter),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	handler.SetupRoutes(router, handlers)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
