package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/milburnr/fcs-site-sub010/internal/metrics"
	"github.com/milburnr/fcs-site-sub010/internal/observability"
)

const (
	// Page is the generic content page template.
	Page = "page"
	// NotFound is the 404 template.
	NotFound = "not_found"

	layoutEntry = "base"
)

// Renderer executes the base layout with a per-page "content" block.
type Renderer struct {
	fsys   fs.FS
	reload bool

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithReload reparses the templates on every render (dev mode).
func WithReload(reload bool) Option {
	return func(r *Renderer) { r.reload = reload }
}

// New parses layouts/*.tmpl and partials/*.tmpl once, then clones that set for every pages/*.tmpl.
func New(fsys fs.FS, opts ...Option) (*Renderer, error) {
	r := &Renderer{fsys: fsys}
	for _, opt := range opts {
		opt(r)
	}
	pages, err := parse(fsys)
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func parse(fsys fs.FS) (map[string]*template.Template, error) {
	shared, err := template.New("_root").ParseFS(fsys, "layouts/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if shared.Lookup(layoutEntry) == nil {
		return nil, fmt.Errorf("parse layouts: no %q template defined", layoutEntry)
	}
	files, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page templates found under pages/")
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".tmpl")
		t, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Has reports whether a page template is registered.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pages[name]
	return ok
}

// Render executes the named page template and returns the document.
func (r *Renderer) Render(ctx context.Context, name string, data any) ([]byte, error) {
	_, span := observability.Tracer().Start(ctx, "render "+name)
	defer span.End()
	span.SetAttributes(attribute.String("template", name))

	start := time.Now()
	out, err := r.execute(name, data)
	metrics.PageRenderDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	metrics.PageRenders.WithLabelValues(name, metrics.Outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("bytes", len(out)))
	return out, nil
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	if r.reload {
		pages, err := parse(r.fsys)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("render: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutEntry, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
