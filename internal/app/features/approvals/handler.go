// internal/app/features/approvals/handler.go
package approvals

import (
	"context"
	"net/http"

	_ "github.com/dalemusser/brewlab/internal/app/features/approvals/views"
	uierrors "github.com/dalemusser/brewlab/internal/app/features/errors"
	userstore "github.com/dalemusser/brewlab/internal/app/store/users"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/dalemusser/brewlab/internal/app/system/viewdata"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the admin page for flipping the approved flag on accounts.
type Handler struct {
	Users  *userstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger, ErrLog: errLog}
}

type pageData struct {
	viewdata.BaseVM
	Pending []models.User
}

// ServeApprovals handles GET /admin/approvals.
func (h *Handler) ServeApprovals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Users.ListPending(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "pending list failed", err, "A database error occurred.", "/app")
		return
	}

	templates.Render(w, r, "approvals", pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Pending approvals"),
		Pending: pending,
	})
}

// HandleApprove handles POST /admin/approvals/{userID}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.SetApproved(ctx, userID, true); err != nil {
		h.ErrLog.LogServerError(w, r, "approve failed", err, "Could not approve the account.", "/admin/approvals")
		return
	}

	h.Log.Info("account approved", zap.String("user_id", userID))
	http.Redirect(w, r, "/admin/approvals", http.StatusSeeOther)
}
