// Package server wires configuration, storage, views and transports into a
// runnable application.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/dmitrijs2005/toomanytabs/internal/netx"
	"github.com/dmitrijs2005/toomanytabs/internal/server/config"
	"github.com/dmitrijs2005/toomanytabs/internal/server/health"
	"github.com/dmitrijs2005/toomanytabs/internal/server/httpserver"
	"github.com/dmitrijs2005/toomanytabs/internal/server/metrics"
	"github.com/dmitrijs2005/toomanytabs/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/toomanytabs/internal/server/services"
	"github.com/dmitrijs2005/toomanytabs/internal/server/views"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *repomanager.Manager
	http   *httpserver.Server
	health *health.Server
	addr   string
}

// localIP is a seam for tests.
var localIP = netx.LocalIP

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	return newApp(context.Background(), c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	logger.Info(ctx, "loaded config", "backend", c.Backend, "store", c.Redacted(), "listen", c.ListenAddr)

	renderer, err := views.NewTemplateRenderer(c.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("views init error: %w", err)
	}

	addr, err := shareAddr(c)
	if err != nil {
		return nil, err
	}

	store, err := repomanager.Open(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	st := &httpserver.State{
		Entries:      services.NewEntryService(store.Entries()),
		Addr:         addr,
		Views:        renderer,
		Pinger:       store,
		Logger:       logger,
		MaxBodyBytes: c.MaxBodyBytes,
	}

	opts := httpserver.Options{AllowedOrigins: c.AllowedOrigins}
	if c.MetricsEnabled {
		m := metrics.New()
		if err := m.RegisterDB(store.DB(), c.Backend); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
		opts.Metrics = m
	}

	app := &App{
		config: c,
		logger: logger,
		store:  store,
		http:   httpserver.NewServer(c.ListenAddr, httpserver.NewRouter(st, opts), logger, c.ShutdownTimeout),
		addr:   addr,
	}
	if c.HealthAddr != "" {
		app.health = health.NewServer(c.HealthAddr, store, logger)
	}
	return app, nil
}

// shareAddr is the base URL printed in shareable links. Without PublicHost
// the LAN address must resolve.
func shareAddr(c *config.Config) (string, error) {
	host := c.PublicHost
	if host == "" {
		ip, err := localIP()
		if err != nil {
			return "", fmt.Errorf("resolve local address: %w", err)
		}
		host = ip.String()
	}
	return netx.BaseURL(host, c.ListenAddr)
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then closes
// the store.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "share_url", app.addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(gctx) })
	if app.health != nil {
		g.Go(func() error { return app.health.Run(gctx) })
	}

	runErr := g.Wait()
	closeErr := app.store.Close()
	app.logger.Info(context.Background(), "App stopped")

	return errors.Join(runErr, closeErr)
}
