// internal/app/features/machines/handler.go
package machines

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/brewlab/internal/app/features/errors"
	machinestore "github.com/dalemusser/brewlab/internal/app/store/machines"
	"github.com/dalemusser/brewlab/internal/app/system/htmlsanitize"
	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Machines *machinestore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, hub *live.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Machines: machinestore.New(db, hub),
		Log:      logger,
		ErrLog:   errLog,
	}
}

// HandleCreate handles POST /machines.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/app")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Machines.Create(ctx, models.Machine{
		Name: htmlsanitize.Text(r.FormValue("name")),
	})
	if err != nil {
		if errors.Is(err, machinestore.ErrNameRequired) {
			h.ErrLog.LogBadRequest(w, r, "machine create rejected", err, err.Error(), "/app")
			return
		}
		h.ErrLog.LogServerError(w, r, "machine create failed", err, "Error adding machine: "+err.Error(), "/app")
		return
	}

	h.Log.Info("machine added",
		zap.String("machine_id", created.ID.Hex()),
		zap.String("name", created.Name))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

// HandleDelete handles POST /machines/{machineID}/delete. Experiments
// referencing the machine keep the dangling id and render
// "Unknown Machine".
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "machineID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad machine id", err, "Invalid machine reference.", "/app")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Machines.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "machine delete failed", err, "Error deleting machine: "+err.Error(), "/app")
		return
	}

	h.Log.Info("machine deleted", zap.String("machine_id", id.Hex()))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}
