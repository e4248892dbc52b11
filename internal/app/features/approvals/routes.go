// internal/app/features/approvals/routes.go
package approvals

import (
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn, sm.RequireAdmin)
		pr.Get("/", h.ServeApprovals)
		pr.Post("/{userID}/approve", h.HandleApprove)
	})

	return r
}
