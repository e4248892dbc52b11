// internal/app/features/experiments/routes.go
package experiments

import (
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn, sm.RequireApproved)
		pr.Get("/", h.ServeApp)
		pr.Post("/experiments", h.HandleCreate)
		pr.Post("/experiments/{experimentID}", h.HandleUpdate)
		pr.Post("/experiments/{experimentID}/delete", h.HandleDelete)
	})

	return r
}
