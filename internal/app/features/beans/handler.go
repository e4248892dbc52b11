// internal/app/features/beans/handler.go
package beans

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/brewlab/internal/app/features/errors"
	beanstore "github.com/dalemusser/brewlab/internal/app/store/beans"
	"github.com/dalemusser/brewlab/internal/app/system/htmlsanitize"
	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns bean mutations. The bean list itself is rendered by the
// experiments page and kept fresh by the live stream; this handler only
// writes and redirects back.
type Handler struct {
	Beans  *beanstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, hub *live.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Beans:  beanstore.New(db, hub),
		Log:    logger,
		ErrLog: errLog,
	}
}

// HandleCreate handles POST /beans.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/app")
		return
	}

	b := models.Bean{
		Name:       htmlsanitize.Text(r.FormValue("name")),
		Origin:     htmlsanitize.Text(r.FormValue("origin")),
		Variety:    htmlsanitize.Text(r.FormValue("variety")),
		Process:    htmlsanitize.Text(r.FormValue("process")),
		RoastLevel: htmlsanitize.Text(r.FormValue("roast_level")),
		RoastDate:  htmlsanitize.Text(r.FormValue("roast_date")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Beans.Create(ctx, b)
	if err != nil {
		if errors.Is(err, beanstore.ErrNameRequired) {
			h.ErrLog.LogBadRequest(w, r, "bean create rejected", err, err.Error(), "/app")
			return
		}
		h.ErrLog.LogServerError(w, r, "bean create failed", err, "Error adding bean: "+err.Error(), "/app")
		return
	}

	h.Log.Info("bean added",
		zap.String("bean_id", created.ID.Hex()),
		zap.String("name", created.Name))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

// HandleDelete handles POST /beans/{beanID}/delete. Any approved user may
// delete any bean; experiments keep their dangling reference and render
// "Unknown Bean".
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "beanID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad bean id", err, "Invalid bean reference.", "/app")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Beans.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "bean delete failed", err, "Error deleting bean: "+err.Error(), "/app")
		return
	}

	h.Log.Info("bean deleted", zap.String("bean_id", id.Hex()))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}
