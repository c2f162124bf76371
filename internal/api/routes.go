package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/minimalpairs/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		// Only reads are time limited.
		r.Group(func(r chi.Router) {
			if s.RequestTimeout > 0 {
				r.Use(timeoutMiddleware(s.RequestTimeout))
			}
			r.Get("/state", s.handleState)
			r.Get("/categories", s.handleCategories)
			r.Get("/history", s.handleHistory)
		})

		r.Post("/next", s.handleNext)
		r.Post("/answer", s.handleAnswer)
		r.Put("/categories/{category}", s.handleToggleCategory)
		r.Post("/continue", s.handleContinue)
		r.Post("/reset", s.handleReset)
	})

	return r
}
