package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/milburnr/fcs-site-sub010/internal/cache"
	"github.com/milburnr/fcs-site-sub010/internal/config"
	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/handlers"
	"github.com/milburnr/fcs-site-sub010/internal/render"
	"github.com/milburnr/fcs-site-sub010/internal/testutil"
	"github.com/milburnr/fcs-site-sub010/templates"
)

func newTestRouter(t *testing.T, store cache.Store, opts ...Option) http.Handler {
	t.Helper()
	site := testutil.Site(t)
	r, err := render.New(templates.FS())
	require.NoError(t, err)
	return NewRouter(Deps{
		Site:     func() *content.Site { return site },
		Renderer: r,
		Builder:  handlers.NewBuilder("https://example.com", handlers.Analytics{}),
		Assets:   testutil.Assets(),
		Cache:    store,
		Logger:   zaptest.NewLogger(t),
	}, opts...)
}

func get(t *testing.T, h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzOK(t *testing.T) {
	rec := get(t, newTestRouter(t, nil), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestPageServedAndCached(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	srv := newTestRouter(t, store)

	rec := get(t, srv, "/services/decks/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "MISS", rec.Header().Get(cacheHeader))
	require.Equal(t, htmlContentType, rec.Header().Get("Content-Type"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Deck Repair | Test Builders", doc.Find("title").Text())
	require.Equal(t, 1, store.Len())

	again := get(t, srv, "/services/decks/")
	require.Equal(t, "HIT", again.Header().Get(cacheHeader))
	require.Equal(t, rec.Body.String(), again.Body.String())
}

func TestHeadOmitsBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, rec.Body.Len())
}

func TestMissingSlashRedirects(t *testing.T) {
	rec := get(t, newTestRouter(t, nil), "/services/decks?ref=nav")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/services/decks/?ref=nav", rec.Header().Get("Location"))
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	rec := get(t, newTestRouter(t, nil), "/no-such-page/")
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex, follow", robots)
	require.NotZero(t, doc.Find(".related a").Length())
}

func TestSitemapAndRobots(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := get(t, srv, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	require.Contains(t, rec.Body.String(), "<loc>https://example.com/services/decks/</loc>")

	rec = get(t, srv, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestAssetsCarryETag(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := get(t, srv, "/assets/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = get(t, srv, "/assets/css/site.css", "If-None-Match", etag)
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestRouter(t, nil)
	get(t, srv, "/")
	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "site_page_renders_total")
}

func TestRateLimitPerIP(t *testing.T) {
	srv := newTestRouter(t, nil, WithRateLimit(1))
	require.Equal(t, http.StatusOK, get(t, srv, "/").Code)
	require.Equal(t, http.StatusTooManyRequests, get(t, srv, "/").Code)
	require.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := New(config.ServerConfig{Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second}, newTestRouter(t, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, ln, zaptest.NewLogger(t)) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
