// Package metrics - счетчики Prometheus для HTTP и кеша страниц.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yatube_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	PageCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_page_cache_hits_total",
			Help: "Page cache hits by key prefix",
		},
		[]string{"prefix"},
	)

	PageCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_page_cache_misses_total",
			Help: "Page cache misses by key prefix",
		},
		[]string{"prefix"},
	)

	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_posts_created_total",
			Help: "Posts created through the site",
		},
	)

	CommentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_comments_created_total",
			Help: "Comments created through the site",
		},
	)
)

func RecordCacheLookup(prefix string, hit bool) {
	if hit {
		PageCacheHits.WithLabelValues(prefix).Inc()
		return
	}
	PageCacheMisses.WithLabelValues(prefix).Inc()
}

// Middleware считает запросы по шаблону маршрута chi, а не по сырому пути,
// иначе /posts/{id}/ раздует кардинальность
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
