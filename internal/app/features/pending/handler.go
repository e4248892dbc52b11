// internal/app/features/pending/handler.go
package pending

import (
	"net/http"

	_ "github.com/dalemusser/brewlab/internal/app/features/pending/views"
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/dalemusser/brewlab/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler renders the waiting-for-approval page. An approved user who
// lands here is bounced to the app so the three states stay mutually
// exclusive.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type pageData struct {
	viewdata.BaseVM
}

// ServePending handles GET /pending.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok && u.Approved {
		http.Redirect(w, r, "/app", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "pending", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Awaiting approval"),
	})
}
