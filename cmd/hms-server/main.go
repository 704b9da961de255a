package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/config"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/hospital"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/middleware"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/telemetry"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/websocket"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:          "hms",
		Short:        "Hospital management data store",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(stateCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(navCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, logger, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, logger, nil
}

// app holds everything the server and the CLI commands share.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	medium   persistence.Medium
	store    *hospital.Store
	metrics  *telemetry.Metrics
	hub      *websocket.Hub
	gate     *auth.Gate
	tokens   *auth.Tokens
	revoked  *auth.TokenRevocationStore
	accounts *auth.Directory
	ready    atomic.Bool
}

// newApp opens the medium, hydrates the store and loads the revocation list.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	medium, err := persistence.Open(ctx, cfg.Persistence())
	if err != nil {
		return nil, fmt.Errorf("open %s medium: %w", cfg.StoreDriver, err)
	}
	a, err := assemble(ctx, cfg, logger, medium)
	if err != nil {
		medium.Close()
		return nil, err
	}
	return a, nil
}

func assemble(ctx context.Context, cfg *config.Config, logger zerolog.Logger, medium persistence.Medium) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		medium:  medium,
		metrics: telemetry.New(telemetry.Config{ServiceVersion: version, RuntimeMetrics: !cfg.IsDev()}),
	}
	a.gate = auth.NewGate(logger, a.metrics.Decision)

	var err error
	a.tokens, err = auth.NewTokens(auth.TokenConfig{Issuer: cfg.AuthIssuer, SigningKey: []byte(cfg.AuthSigningKey)})
	if err != nil {
		return nil, err
	}
	a.accounts, err = auth.NewDemoDirectory(cfg.DemoSecret)
	if err != nil {
		return nil, err
	}
	a.revoked = auth.NewTokenRevocationStore(medium)
	if err := a.revoked.Load(ctx); err != nil {
		return nil, fmt.Errorf("load revocations: %w", err)
	}

	// The hub needs the collection names, which the store defines.
	var hub *websocket.Hub
	observer := store.Observers(a.metrics, store.ObserverFunc(func(ev store.ChangeEvent) {
		if hub != nil {
			hub.Changed(ev)
		}
	}))
	a.store = hospital.New(a.metrics.Instrument(medium), logger, store.WithObserver(observer))
	hub = websocket.NewHub(a.store.Topics(), a.gate, logger, websocket.WithRevocations(a.revoked))
	a.hub = hub

	if _, err := a.store.Hydrate(ctx); err != nil {
		return nil, err
	}
	a.ready.Store(true)
	return a, nil
}

func (a *app) Close() error {
	return a.medium.Close()
}

func (a *app) manager() *auth.Manager {
	return auth.NewManager(a.medium, a.tokens, a.accounts, a.revoked, a.logger)
}

// echo builds the HTTP server.
func (a *app) echo() *echo.Echo {
	cfg := a.cfg
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(a.logger, a.metrics))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(a.metrics.Middleware())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(auth.SessionMiddleware(auth.Verifier{
		Tokens:  a.tokens,
		Revoked: a.revoked,
		Ready:   a.ready.Load,
		Skipper: auth.AuthSkipper,
	}))
	e.Use(middleware.Audit(a.logger))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	apiV1 := e.Group("/api/v1")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"version": version,
			"driver":  cfg.StoreDriver,
			"records": a.store.Counts(),
		})
	})
	metricsHandler := a.metrics.Handler()
	e.GET("/metrics", func(c echo.Context) error {
		a.metrics.SetCollectionSizes(a.store.Counts())
		return metricsHandler(c)
	})

	auth.NewHandler(a.accounts, a.tokens, a.revoked, a.gate).
		RegisterRoutes(apiV1, middleware.RateLimit(middleware.LoginRateLimitConfig()))
	a.store.RegisterRoutes(apiV1, a.gate)
	websocket.NewHandler(a.hub, cfg.CORSOrigins).RegisterRoutes(e)

	return e
}

func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open store")
		return err
	}
	defer a.Close()
	logger.Info().Str("driver", cfg.StoreDriver).Interface("records", a.store.Counts()).Msg("store ready")

	e := a.echo()

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
