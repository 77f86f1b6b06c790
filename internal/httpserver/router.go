// Package httpserver serves the site over HTTP.
package httpserver

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub010/internal/cache"
	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/handlers"
	mw "github.com/milburnr/fcs-site-sub010/internal/middleware"
	"github.com/milburnr/fcs-site-sub010/internal/observability"
)

const (
	defaultTimeout   = 30 * time.Second
	compressionLevel = 5
)

// Renderer executes a named page template.
type Renderer interface {
	Render(ctx context.Context, name string, data any) ([]byte, error)
}

// Deps are the collaborators every request handler reads from.
type Deps struct {
	// Site returns the site to serve; it may change between requests in dev mode.
	Site     func() *content.Site
	Renderer Renderer
	Builder  *handlers.Builder
	Assets   fs.FS
	Cache    cache.Store
	Logger   *zap.Logger
}

type routerConfig struct {
	middlewares []func(http.Handler) http.Handler
	ratePerMin  int
	timeout     time.Duration
	metrics     http.Handler
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(m ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, m...)
	}
}

// WithRateLimit throttles page requests per client IP. Zero disables it.
func WithRateLimit(perMinute int) Option {
	return func(cfg *routerConfig) {
		cfg.ratePerMin = perMinute
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(cfg *routerConfig) {
		cfg.timeout = d
	}
}

// WithMetricsHandler overrides the handler mounted at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.metrics = h
	}
}

// NewRouter constructs the chi router with the shared middleware stack, the
// operational endpoints and the catch-all page handler.
func NewRouter(deps Deps, opts ...Option) chi.Router {
	cfg := routerConfig{timeout: defaultTimeout, metrics: promhttp.Handler()}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop{}
	}
	pages := &pageHandlers{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware())
	r.Use(observability.RequestLoggerMiddleware(logger.Named("http")))
	r.Use(observability.RecoveryMiddleware(logger.Named("http")))
	r.Use(middleware.Compress(compressionLevel))
	r.Use(middleware.Timeout(cfg.timeout))
	for _, m := range cfg.middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.Get("/healthz", healthz)
	r.Handle("/metrics", cfg.metrics)
	if deps.Assets != nil {
		assets, err := mw.AssetsWithCache(deps.Assets)
		if err != nil {
			logger.Warn("asset etags incomplete", zap.Error(err))
		}
		r.Handle("/assets/*", http.StripPrefix("/assets", assets))
	}

	r.Group(func(r chi.Router) {
		if cfg.ratePerMin > 0 {
			r.Use(httprate.LimitByIP(cfg.ratePerMin, time.Minute))
		}
		r.Use(mw.SecurityHeaders)
		r.Get("/sitemap.xml", pages.sitemap)
		r.Get("/robots.txt", pages.robots)
		r.Get("/*", pages.page)
		r.Head("/*", pages.page)
	})

	r.NotFound(pages.notFound)
	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
