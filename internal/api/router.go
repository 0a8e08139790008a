package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ads-rule-builder/internal/observability"
)

func Router(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Measure)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/rules/preview", h.Preview)
		r.Post("/rules/validate", h.ValidateRule)
		r.Post("/rules/assignments", h.Assignments)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Get("/summary", h.SessionSummary)

				r.Post("/groups", h.AddGroup)
				r.Route("/groups/{groupID}", func(r chi.Router) {
					r.Patch("/", h.PatchGroup)
					r.Delete("/", h.RemoveGroup)
					r.Post("/conditions", h.AddCondition)
					// PATCH addresses a condition by id, DELETE by
					// positional index; one param name keeps chi happy.
					r.Patch("/conditions/{conditionRef}", h.UpdateCondition)
					r.Delete("/conditions/{conditionRef}", h.RemoveCondition)
				})

				r.Post("/actions", h.AddAction)
				r.Patch("/actions/{actionID}", h.UpdateAction)
				r.Delete("/actions/{actionID}", h.RemoveAction)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", observability.MetricsHandler())
	return r
}
