// Package httpapi serves the dataset queries as a JSON HTTP API for a map client.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"migmap/internal/atlas"
	"migmap/internal/ingest"
)

// Handler answers API requests against one loaded dataset.
type Handler struct {
	ds       *atlas.Dataset
	validate *validator.Validate
}

// NewRouter builds the API router. Metrics are served from gatherer at /metrics when it
// is not nil.
func NewRouter(ds *atlas.Dataset, gatherer prometheus.Gatherer) http.Handler {
	h := &Handler{ds: ds, validate: ingest.NewValidator()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/info", h.info)
		r.Get("/years", h.years)
		r.Get("/state", h.initialState)
		r.Post("/render", h.renderView)

		r.Route("/classify", func(r chi.Router) {
			r.Get("/choropleth", h.classifyChoropleth)
			r.Get("/anamorphic", h.classifyAnamorphic)
		})

		r.Route("/countries/{code}", func(r chi.Router) {
			r.Get("/", h.country)
			r.Get("/partners", h.partners)
			r.Get("/timeseries", h.timeseries)
			r.Get("/summary", h.summary)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
