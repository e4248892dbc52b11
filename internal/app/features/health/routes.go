// internal/app/features/health/routes.go
package health

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleHealth)

	return r
}
