package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router from the route policy table. Every request is
// traced, logged and passed through the authentication gate; the authority
// check runs per route.
func (h *Handler) Init() (*chi.Mux, error) {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.auth)

	for _, p := range routePolicies {
		router.With(h.requireAuthority(p.authority)).Method(p.method, p.pattern, p.handler(h))
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	if err := validateRoutePolicies(router, routePolicies); err != nil {
		return nil, err
	}

	return router, nil
}
