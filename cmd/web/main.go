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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/admin"
	"github.com/BergomiStore/bergomi_store/internal/apiclient"
	"github.com/BergomiStore/bergomi_store/internal/config"
	"github.com/BergomiStore/bergomi_store/internal/editor"
	"github.com/BergomiStore/bergomi_store/internal/middleware"
	"github.com/BergomiStore/bergomi_store/internal/web"
	"github.com/BergomiStore/bergomi_store/internal/worker"
)

// main is the entrypoint for the storefront and admin panel.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateWeb(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("api", cfg.Web.APIBaseURL).Msg("starting bergomi store web")

	// 3. Initialize API client
	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.Web.APIBaseURL,
		APIPath: cfg.Web.APIPath,
		Timeout: cfg.Web.APITimeout,
	})

	// 4. Initialize templates, drafts and admin flow
	renderer, err := web.NewRenderer()
	if err != nil {
		log.Error().Err(err).Msg("template parsing failed")
		fmt.Fprintf(os.Stderr, "template parsing failed: %v\n", err)
		os.Exit(1)
	}
	drafts, err := editor.NewStore(cfg.Web.DraftCapacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "draft store: %v\n", err)
		os.Exit(1)
	}
	gate := admin.NewGate(client, cfg.Web.AdminGateStrict)
	manager := admin.NewManager(client)

	// 5. Initialize handlers
	storefront := web.NewStorefrontHandler(client, renderer)
	adminHandler := web.NewAdminHandler(manager, drafts, renderer)

	// 6. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	web.Routes(router, storefront, adminHandler, gate, renderer)

	// 7. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.NewDraftSweepWorker(drafts, cfg.Web.DraftSweepInterval, cfg.Web.DraftTTL).Start(ctx)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Web.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Web.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Cancel context to stop workers
	cancel()

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
