package httpserver

import (
	"github.com/dmitrijs2005/toomanytabs/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options toggles the optional parts of the router.
type Options struct {
	Metrics        *metrics.Metrics // nil disables /metrics and instrumentation
	AllowedOrigins []string         // empty disables CORS
}

// NewRouter wires every route onto st.
func NewRouter(st *State, opts Options) *chi.Mux {
	h := &handler{st: st}
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(st.Logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(corsHandler(opts.AllowedOrigins))
	}

	r.Get("/", h.index)
	r.Get("/entry", h.newEntry)
	r.Post("/entry", h.create)
	r.Post("/entries", h.create)

	r.Route("/entries/{id}", func(r chi.Router) {
		r.Get("/", h.show)
		r.Put("/", h.update)
		r.Post("/", h.update)
		r.Delete("/", h.remove)
		r.Post("/delete", h.remove)
	})

	r.Get("/healthz", h.healthz)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	return r
}
