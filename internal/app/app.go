package app

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/mongolens/config"
	"github.com/haguru/mongolens/internal/auth"
	"github.com/haguru/mongolens/internal/explorerservice"
	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/internal/middleware"
	"github.com/haguru/mongolens/internal/routes"
	"github.com/haguru/mongolens/internal/server"
	"github.com/haguru/mongolens/pkg/databases/mongo"
	"github.com/haguru/mongolens/pkg/metrics"
	"github.com/haguru/mongolens/pkg/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds how long Run waits for requests and clients to close.
var ShutdownTimeout = 15 * time.Second

// App represents the main application, containing server and configuration.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	Pool       *mongo.Pool
	Limiter    *middleware.ClientLimiter
	privateKey *ecdsa.PrivateKey
}

// LoadConfig reads the YAML file, applies MONGOLENS_ environment overrides
// and validates the result.
func LoadConfig(configPath string, envFiles ...string) (*config.ServiceConfig, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnvOverrides(cfg, envFiles...); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		var errs structValidator.ValidationErrors
		if errors.As(err, &errs) {
			return nil, fmt.Errorf("validation error: %s", errs)
		}
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return cfg, nil
}

// NewApp creates and configures a new App instance.
func NewApp(cfg *config.ServiceConfig) (*App, error) {
	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}
	app.Metrics = app.initializeMetrics()

	if cfg.Auth.Enabled {
		if err := app.initializePrivateKey(); err != nil {
			return nil, fmt.Errorf("failed to initialize private key: %w", err)
		}
	}

	connector := mongo.NewDriverConnector(&cfg.Pool, cfg.ServiceName, logger)
	app.Pool = mongo.NewPool(connector, logger,
		mongo.WithMetrics(app.Metrics),
		mongo.WithMaxClients(cfg.Pool.MaxClients),
		mongo.WithIdleTimeout(cfg.Pool.IdleTimeout),
		mongo.WithDisconnectTimeout(cfg.Pool.DisconnectTimeout),
	)

	explorer := explorerservice.NewExplorerService(app.Pool, cfg.Query, logger)
	route := routes.NewRoute(app.Metrics, explorer, app.Pool, routes.NewValidator(), logger)

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)
	if err := app.registerRoutes(route); err != nil {
		return nil, err
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.Recovery(logger),
		middleware.RequestID,
	}
	if cfg.RateLimit.Enabled {
		app.Limiter = middleware.NewClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
		middlewares = append(middlewares, middleware.RateLimitMiddleware(app.Limiter))
	}
	app.Server.Use(middlewares...)

	return app, nil
}

func (app *App) registerRoutes(route *routes.Route) error {
	apiRoutes := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{routes.TestConnectionRouteAPI, route.TestConnection},
		{routes.ListDatabasesRouteAPI, route.ListDatabases},
		{routes.ListCollectionsRouteAPI, route.ListCollections},
		{routes.QueryDocumentsRouteAPI, route.QueryDocuments},
		{routes.SaveDocumentRouteAPI, route.SaveDocument},
	}

	for _, r := range apiRoutes {
		var handler http.Handler = r.handler
		if app.privateKey != nil {
			handler = middleware.BearerAuth(&app.privateKey.PublicKey, app.Logger)(handler)
		}
		if err := app.Server.Handle(r.path, otelhttp.NewHandler(handler, r.path)); err != nil {
			return fmt.Errorf("failed to add route %s: %w", r.path, err)
		}
	}

	metricsHandler := promhttp.HandlerFor(app.Metrics.GetRegistry(), promhttp.HandlerOpts{})
	if err := app.Server.Handle(routes.MetricsRouteAPI, otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)); err != nil {
		return fmt.Errorf("failed to add metrics route: %w", err)
	}

	if err := app.Server.AddRoute(routes.HealthRouteAPI, route.Health); err != nil {
		return fmt.Errorf("failed to add health route: %w", err)
	}
	return nil
}

// Run serves until ctx is cancelled, then drains requests and closes every
// cached MongoDB client.
func (app *App) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	app.Pool.StartSweeper(sweepCtx, app.Config.Pool.SweepInterval)
	if app.Limiter != nil {
		app.Limiter.StartPruner(sweepCtx, app.Config.RateLimit.IdleTTL)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Server.ListenAndServe()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server shutdown failed", "error", err)
	}
	results := app.Pool.Close(shutdownCtx)
	app.Logger.Info("Closed MongoDB clients", "count", len(results))

	return runErr
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	mongo.RegisterMetrics(appMetrics)
	routes.RegisterMetrics(appMetrics)
	return appMetrics
}

func (app *App) initializePrivateKey() error {
	privateKey, err := auth.LoadECDSAPrivateKey(app.Config.Auth.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %w", err)
	}

	app.privateKey = privateKey
	return nil
}

// MintToken signs a bearer token for operator with the configured key,
// generating the key file first when genKey is set and none exists.
func MintToken(cfg *config.ServiceConfig, operator string, genKey bool) (string, error) {
	privateKey, err := auth.LoadECDSAPrivateKey(cfg.Auth.PrivateKeyPath)
	if err != nil && genKey {
		privateKey, err = auth.GenerateECDSAPrivateKey(cfg.Auth.PrivateKeyPath)
	}
	if err != nil {
		return "", err
	}
	return auth.CreateToken(operator, privateKey, cfg.Auth.TokenTTL)
}
