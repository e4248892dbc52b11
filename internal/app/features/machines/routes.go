// internal/app/features/machines/routes.go
package machines

import (
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn, sm.RequireApproved)
		pr.Post("/", h.HandleCreate)
		pr.Post("/{machineID}/delete", h.HandleDelete)
	})

	return r
}
