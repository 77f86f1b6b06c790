// Package export writes the whole site to a directory as static files.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/handlers"
	"github.com/milburnr/fcs-site-sub010/internal/metrics"
	"github.com/milburnr/fcs-site-sub010/internal/render"
	"github.com/milburnr/fcs-site-sub010/internal/sitemap"
)

// ManifestFile is written at the root of every export.
const ManifestFile = "manifest.json"

// Renderer executes a named page template.
type Renderer interface {
	Render(ctx context.Context, name string, data any) ([]byte, error)
}

// Deps wires an Exporter.
type Deps struct {
	Site     *content.Site
	Renderer Renderer
	Builder  *handlers.Builder
	// Assets is copied under assets/. Nil skips the copy.
	Assets  fs.FS
	Workers int
	Logger  *zap.Logger
	Clock   func() time.Time
	NewID   func() string
}

// Exporter renders every registered route to disk.
type Exporter struct {
	site     *content.Site
	renderer Renderer
	builder  *handlers.Builder
	assets   fs.FS
	workers  int
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() string
}

// Manifest describes one export.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	BaseURL     string    `json:"base_url"`
	Version     string    `json:"content_version"`
	Routes      []string  `json:"routes"`
	Assets      int       `json:"assets"`
}

// New validates deps and returns an Exporter.
func New(deps Deps) (*Exporter, error) {
	if deps.Site == nil {
		return nil, errors.New("export: site is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("export: renderer is required")
	}
	if deps.Builder == nil {
		return nil, errors.New("export: builder is required")
	}
	e := &Exporter{
		site:     deps.Site,
		renderer: deps.Renderer,
		builder:  deps.Builder,
		assets:   deps.Assets,
		workers:  deps.Workers,
		logger:   deps.Logger,
		clock:    deps.Clock,
		newID:    deps.NewID,
	}
	if e.workers < 1 {
		e.workers = 1
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.newID == nil {
		e.newID = func() string { return ulid.Make().String() }
	}
	return e, nil
}

// Export writes DIR/<route>/index.html for every route plus 404.html,
// sitemap.xml, robots.txt, the asset tree and manifest.json.
func (e *Exporter) Export(ctx context.Context, dir string) (Manifest, error) {
	start := time.Now()
	defer func() { metrics.ExportDuration.Observe(time.Since(start).Seconds()) }()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("export: %w", err)
	}

	routes := e.site.Routes()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, route := range routes {
		route := route
		g.Go(func() error {
			return e.page(gctx, dir, route)
		})
	}
	g.Go(func() error {
		body, err := e.renderer.Render(gctx, render.NotFound, e.builder.NotFound(e.site, "/404.html"))
		if err != nil {
			return fmt.Errorf("render 404: %w", err)
		}
		return writeFile(dir, "404.html", body)
	})
	if err := g.Wait(); err != nil {
		return Manifest{}, err
	}

	var sm bytes.Buffer
	if err := sitemap.Write(&sm, sitemap.Build(e.site, e.builder.BaseURL)); err != nil {
		return Manifest{}, err
	}
	if err := writeFile(dir, "sitemap.xml", sm.Bytes()); err != nil {
		return Manifest{}, err
	}
	if err := writeFile(dir, "robots.txt", []byte(sitemap.Robots(e.site, e.builder.BaseURL))); err != nil {
		return Manifest{}, err
	}

	assets, err := e.copyAssets(dir)
	if err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		BuildID:     e.newID(),
		GeneratedAt: e.clock().UTC(),
		BaseURL:     e.builder.BaseURL,
		Version:     e.site.Version(),
		Assets:      assets,
	}
	for _, r := range routes {
		m.Routes = append(m.Routes, r.String())
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := writeFile(dir, ManifestFile, append(raw, '\n')); err != nil {
		return Manifest{}, err
	}
	e.logger.Info("export complete",
		zap.String("build_id", m.BuildID),
		zap.String("dir", dir),
		zap.Int("routes", len(m.Routes)),
		zap.Int("assets", assets),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

func (e *Exporter) page(ctx context.Context, dir string, route content.Route) error {
	data, err := e.builder.Page(e.site, route)
	if err != nil {
		return err
	}
	body, err := e.renderer.Render(ctx, render.Page, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", route, err)
	}
	e.logger.Debug("page exported", zap.String("route", route.String()), zap.Int("bytes", len(body)))
	return writeFile(dir, RoutePath(route), body)
}

// RoutePath is the slash path, relative to the export root, that serves route.
func RoutePath(route content.Route) string {
	return path.Join(strings.Trim(route.String(), "/"), "index.html")
}

func (e *Exporter) copyAssets(dir string) (int, error) {
	if e.assets == nil {
		return 0, nil
	}
	n := 0
	err := fs.WalkDir(e.assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := fs.ReadFile(e.assets, p)
		if err != nil {
			return err
		}
		n++
		return writeFile(dir, path.Join("assets", p), b)
	})
	if err != nil {
		return 0, fmt.Errorf("copy assets: %w", err)
	}
	return n, nil
}

func writeFile(dir, rel string, body []byte) error {
	target := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
