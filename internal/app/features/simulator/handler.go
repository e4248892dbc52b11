// internal/app/features/simulator/handler.go
package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	experimentstore "github.com/dalemusser/brewlab/internal/app/store/experiments"
	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/dalemusser/brewlab/internal/domain/brewsim"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler evaluates the sweet-spot dial for one experiment. Read-only:
// the simulation never writes back to the store.
type Handler struct {
	Experiments *experimentstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, hub *live.Hub, logger *zap.Logger) *Handler {
	return &Handler{Experiments: experimentstore.New(db, hub), Log: logger}
}

type result struct {
	GrindSize    float64    `json:"grindSize"`
	BrewTime     float64    `json:"brewTime"`
	Yield        float64    `json:"yield"`
	FlowBehavior string     `json:"flowBehavior"`
	Lightness    float64    `json:"lightness"`
	Bars         [3]float64 `json:"bars"`
}

// HandleSimulate handles GET /simulate?experiment=<id>&slider=<0..100>.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get("experiment"))
	if err != nil {
		http.Error(w, "invalid experiment reference", http.StatusBadRequest)
		return
	}

	slider, err := strconv.Atoi(r.URL.Query().Get("slider"))
	if err != nil || slider < 0 || slider > 100 {
		http.Error(w, "slider must be an integer in [0,100]", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Experiments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "experiment not found", http.StatusNotFound)
			return
		}
		h.Log.Error("experiment fetch failed", zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	adjusted := brewsim.Adjust(e.Notes, brewsim.Params{
		GrindSize: e.Brew.GrindSize,
		BrewTime:  e.Brew.BrewTime,
		Yield:     e.Brew.Yield,
	}, slider)

	out := result{
		GrindSize:    adjusted.GrindSize,
		BrewTime:     adjusted.BrewTime,
		Yield:        adjusted.Yield,
		FlowBehavior: brewsim.FlowBehavior(adjusted.GrindSize, adjusted.BrewTime),
		Lightness:    brewsim.Lightness(slider),
		Bars:         brewsim.IndicatorBars(slider),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.Log.Error("simulate encode failed", zap.Error(err))
	}
}
