package main

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub010/internal/cache"
	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/httpserver"
	"github.com/milburnr/fcs-site-sub010/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :SITE_PORT)")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string) error {
	site, err := a.loadSite()
	if err != nil {
		return err
	}
	live := content.NewLive(site)
	metrics.ContentPages.Set(float64(len(site.Routes())))

	r, err := a.renderer()
	if err != nil {
		return err
	}
	assets, err := a.assets()
	if err != nil {
		return err
	}
	store, closeStore, err := a.cacheStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if a.cfg.Site.Dev && a.cfg.Site.ContentDir != "" {
		w, err := content.NewWatcher(a.cfg.Site.ContentDir, live, a.logger.Named("content"),
			content.WithReloadHook(func(s *content.Site, err error) {
				metrics.ContentReloads.WithLabelValues(metrics.Outcome(err)).Inc()
				if err == nil {
					metrics.ContentPages.Set(float64(len(s.Routes())))
				}
			}))
		if err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				a.logger.Error("content watcher stopped", zap.Error(err))
			}
		}()
	}

	router := httpserver.NewRouter(httpserver.Deps{
		Site:     live.Site,
		Renderer: r,
		Builder:  a.builder(),
		Assets:   assets,
		Cache:    store,
		Logger:   a.logger,
	}, httpserver.WithRateLimit(a.cfg.RateLimit.PerMinute))

	srv := httpserver.New(a.cfg.Server, router)
	if addr != "" {
		srv.Addr = addr
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	a.logger.Info("serving",
		zap.String("base_url", a.cfg.Site.BaseURL),
		zap.Bool("dev", a.cfg.Site.Dev),
		zap.String("cache", store.Name()),
	)
	return httpserver.Run(ctx, srv, ln, a.logger)
}

// cacheStore picks the render cache: none in dev mode, Redis when an address
// is configured, otherwise an in-process TTL cache.
func (a *app) cacheStore(ctx context.Context) (cache.Store, func(), error) {
	noop := func() {}
	switch {
	case a.cfg.Site.Dev || a.cfg.Cache.TTL == 0:
		return cache.Nop{}, noop, nil
	case a.cfg.Cache.RedisAddr != "":
		rc, err := cache.NewRedis(ctx, a.cfg.Cache.RedisAddr, a.cfg.Cache.TTL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, func() { _ = rc.Close() }, nil
	default:
		return cache.NewMemory(a.cfg.Cache.TTL), noop, nil
	}
}
