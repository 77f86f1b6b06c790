package httpserver

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/observability"
	"github.com/milburnr/fcs-site-sub010/internal/render"
	"github.com/milburnr/fcs-site-sub010/internal/sitemap"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	cacheHeader     = "X-Cache"
)

type pageHandlers struct {
	deps Deps
}

// CacheKey identifies a rendered route for one corpus version.
func CacheKey(route content.Route, version string) string {
	return route.String() + "@" + version
}

func (h *pageHandlers) page(w http.ResponseWriter, r *http.Request) {
	site := h.deps.Site()
	p, route, redirect := site.Lookup(r.URL.Path)
	if p == nil {
		h.notFound(w, r)
		return
	}
	if redirect {
		target := route.String()
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	ctx := r.Context()
	logger := observability.FromContext(ctx)
	key := CacheKey(route, site.Version())
	body, hit, err := h.deps.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("render cache get failed", zap.String("backend", h.deps.Cache.Name()), zap.Error(err))
	}
	if !hit {
		data, err := h.deps.Builder.Page(site, route)
		if err != nil {
			logger.Error("build page data failed", zap.String("route", route.String()), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		body, err = h.deps.Renderer.Render(ctx, render.Page, data)
		if err != nil {
			logger.Error("render page failed", zap.String("route", route.String()), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if err := h.deps.Cache.Set(ctx, key, body); err != nil {
			logger.Warn("render cache set failed", zap.String("backend", h.deps.Cache.Name()), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", htmlContentType)
	if hit {
		w.Header().Set(cacheHeader, "HIT")
	} else {
		w.Header().Set(cacheHeader, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (h *pageHandlers) notFound(w http.ResponseWriter, r *http.Request) {
	data := h.deps.Builder.NotFound(h.deps.Site(), r.URL.Path)
	body, err := h.deps.Renderer.Render(r.Context(), render.NotFound, data)
	if err != nil {
		observability.FromContext(r.Context()).Error("render not found page failed", zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (h *pageHandlers) sitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := sitemap.Write(&buf, sitemap.Build(h.deps.Site(), h.deps.Builder.BaseURL)); err != nil {
		observability.FromContext(r.Context()).Error("write sitemap failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *pageHandlers) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(sitemap.Robots(h.deps.Site(), h.deps.Builder.BaseURL)))
}
