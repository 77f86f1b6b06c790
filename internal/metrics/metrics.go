package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_page_renders_total",
			Help: "Total number of template renders by template and outcome",
		},
		[]string{"template", "outcome"},
	)

	PageRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "site_page_render_duration_seconds",
			Help:    "Duration of template execution in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"template"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_render_cache_lookups_total",
			Help: "Rendered-page cache lookups by backend and result",
		},
		[]string{"backend", "result"},
	)

	HTTPResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_http_responses_total",
			Help: "HTTP responses by status class",
		},
		[]string{"code"},
	)

	ContentReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_content_reloads_total",
			Help: "Content corpus reload attempts by outcome",
		},
		[]string{"outcome"},
	)

	ContentPages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "site_content_pages",
			Help: "Number of pages in the currently served corpus",
		},
	)

	ExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "site_export_duration_seconds",
			Help: "Duration of a full static export in seconds",
		},
	)
)

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
