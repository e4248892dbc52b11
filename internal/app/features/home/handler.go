// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler routes "/" to exactly one of the three top-level states:
// Unauthenticated -> /login, PendingApproval -> /pending, Active -> /app.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeHome handles GET /.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	switch {
	case !ok:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case !u.Approved:
		http.Redirect(w, r, "/pending", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/app", http.StatusSeeOther)
	}
}
