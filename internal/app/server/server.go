package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/app/server/api"
	healthAPI "blogcanvas/internal/app/server/api/http/health"
	"blogcanvas/internal/config"
	"blogcanvas/internal/domain/geocode"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/domain/session"
	"blogcanvas/internal/infrastructure/cache"
	"blogcanvas/internal/infrastructure/geocoder"
	"blogcanvas/internal/infrastructure/storage"
	"blogcanvas/internal/utils/logger"
)

const readHeaderTimeout = 5 * time.Second

// App owns the HTTP server and everything it depends on.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage storage.Storage
	redis   *redis.Client
	server  *http.Server
}

// New opens storage, applies migrations and wires the API.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	st, err := storage.Open(ctx, cfg, storage.Options{Migrate: true}, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	app := &App{cfg: cfg, log: log, storage: st}

	checks := map[string]healthAPI.Check{"storage": st.Ping}
	layouts := st.Layouts()
	var placesCache geocode.Cache

	if cfg.Cache.Enabled() {
		app.redis, err = cache.NewClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		layouts = cache.NewLayoutRepository(layouts, app.redis, cfg.Cache.TTL, log)
		placesCache = cache.NewGeocodeCache(app.redis, cfg.Cache.TTL)
		checks["cache"] = func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
		log.Info("redis cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	tokens := session.NewStaticRepository(cfg.Auth.Tokens)
	if tokens.Len() == 0 {
		log.Warn("no API tokens configured, only public endpoints are usable")
	} else {
		log.Info("API tokens loaded", "users", tokens.Len())
	}

	provider := geocoder.NewNominatim(geocoder.Options{
		BaseURL:   cfg.Geocoder.URL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
	}, log)

	mux := api.New(api.Deps{
		Layouts:  layout.NewService(layouts, log),
		Geocoder: geocode.NewService(provider, placesCache, log),
		Sessions: session.NewService(tokens, log),
		Checks:   checks,
	}, log)

	app.server = &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
	return app, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "addr", ln.Addr().String(), "env", a.cfg.Env, "storage", a.cfg.Storage.Driver)
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down", "timeout", a.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Close releases storage and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if err := a.storage.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Error("close resources", logger.Err(err))
		return err
	}
	return nil
}
