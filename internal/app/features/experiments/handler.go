// internal/app/features/experiments/handler.go
package experiments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/dalemusser/brewlab/internal/app/features/errors"
	_ "github.com/dalemusser/brewlab/internal/app/features/experiments/views"
	"github.com/dalemusser/brewlab/internal/app/policy/experimentpolicy"
	beanstore "github.com/dalemusser/brewlab/internal/app/store/beans"
	experimentstore "github.com/dalemusser/brewlab/internal/app/store/experiments"
	machinestore "github.com/dalemusser/brewlab/internal/app/store/machines"
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/dalemusser/brewlab/internal/app/system/htmlsanitize"
	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/dalemusser/brewlab/internal/app/system/viewdata"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the main app page and all experiment mutations.
type Handler struct {
	Experiments *experimentstore.Store
	Beans       *beanstore.Store
	Machines    *machinestore.Store
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, hub *live.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Experiments: experimentstore.New(db, hub),
		Beans:       beanstore.New(db, hub),
		Machines:    machinestore.New(db, hub),
		Log:         logger,
		ErrLog:      errLog,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type pageData struct {
	viewdata.BaseVM
	Cards          []Card
	Beans          []models.Bean
	Machines       []models.Machine
	FlavorProfiles []string

	// Edit is non-nil when the page is prefilled for editing one
	// experiment; EditMachineID is its machine reference as hex ("" when
	// none) so the select can mark the option.
	Edit          *models.Experiment
	EditID        string
	EditBeanID    string
	EditMachineID string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /app                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeApp renders the main page: the three forms plus the initial card
// list. After first paint the SSE stream keeps the cards current; this
// render only covers the moment before the stream connects.
func (h *Handler) ServeApp(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	beans, err := h.Beans.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "bean list failed", err, "A database error occurred.", "/")
		return
	}
	machines, err := h.Machines.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "machine list failed", err, "A database error occurred.", "/")
		return
	}
	exps, err := h.Experiments.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "experiment list failed", err, "A database error occurred.", "/")
		return
	}

	data := pageData{
		BaseVM:         viewdata.NewBaseVM(r, "BrewLab"),
		Cards:          BuildCards(exps, beans, machines, u.ID, u.Admin),
		Beans:          beans,
		Machines:       machines,
		FlavorProfiles: models.FlavorProfiles,
	}

	if editHex := r.URL.Query().Get("edit"); editHex != "" {
		if e, ok := h.loadEditable(w, r, editHex); ok {
			data.Edit = e
			data.EditID = e.ID.Hex()
			data.EditBeanID = e.BeanID.Hex()
			if e.MachineID != nil {
				data.EditMachineID = e.MachineID.Hex()
			}
		} else {
			return
		}
	}

	templates.Render(w, r, "app", data)
}

// loadEditable fetches the experiment to prefill and enforces the
// ownership gate. Writes the error response itself when returning false.
func (h *Handler) loadEditable(w http.ResponseWriter, r *http.Request, hex string) (*models.Experiment, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad experiment id", err, "Invalid experiment reference.", "/app")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Experiments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogBadRequest(w, r, "experiment not found", err, "That experiment no longer exists.", "/app")
			return nil, false
		}
		h.ErrLog.LogServerError(w, r, "experiment fetch failed", err, "A database error occurred.", "/app")
		return nil, false
	}

	if !experimentpolicy.CanModify(r, e) {
		uierrors.RenderForbidden(w, r, "You can only edit your own experiments.", "/app")
		return nil, false
	}
	return &e, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /app/experiments                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	e, err := parseExperimentForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "experiment form invalid", err, err.Error(), "/app")
		return
	}
	e.UserID = u.ID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Experiments.Create(ctx, e)
	if err != nil {
		if errors.Is(err, experimentstore.ErrBeanRequired) {
			h.ErrLog.LogBadRequest(w, r, "experiment create rejected", err, "Please select a bean for this experiment.", "/app")
			return
		}
		h.ErrLog.LogServerError(w, r, "experiment create failed", err, "Error saving experiment: "+err.Error(), "/app")
		return
	}

	h.Log.Info("experiment logged",
		zap.String("experiment_id", created.ID.Hex()),
		zap.String("user_id", u.ID))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /app/experiments/{experimentID}                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleUpdate replaces the editable fields of an existing experiment.
// The owner and creation time are never touched; success leaves edit
// mode by redirecting to the plain app page.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "experimentID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad experiment id", err, "Invalid experiment reference.", "/app")
		return
	}

	mut, err := parseExperimentForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "experiment form invalid", err, err.Error(), "/app")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Experiments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogBadRequest(w, r, "experiment not found", err, "That experiment no longer exists.", "/app")
			return
		}
		h.ErrLog.LogServerError(w, r, "experiment fetch failed", err, "A database error occurred.", "/app")
		return
	}
	if !experimentpolicy.CanModify(r, existing) {
		uierrors.RenderForbidden(w, r, "You can only update your own experiments.", "/app")
		return
	}

	if err := h.Experiments.Update(ctx, id, mut); err != nil {
		if errors.Is(err, experimentstore.ErrBeanRequired) {
			h.ErrLog.LogBadRequest(w, r, "experiment update rejected", err, "Please select a bean for this experiment.", "/app")
			return
		}
		h.ErrLog.LogServerError(w, r, "experiment update failed", err, "Error updating experiment: "+err.Error(), "/app")
		return
	}

	h.Log.Info("experiment updated", zap.String("experiment_id", id.Hex()))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /app/experiments/{experimentID}/delete                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "experimentID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad experiment id", err, "Invalid experiment reference.", "/app")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Experiments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Already gone; deleting twice is not an error.
			http.Redirect(w, r, "/app", http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "experiment fetch failed", err, "A database error occurred.", "/app")
		return
	}
	if !experimentpolicy.CanModify(r, existing) {
		uierrors.RenderForbidden(w, r, "You can only delete your own experiments.", "/app")
		return
	}

	if _, err := h.Experiments.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "experiment delete failed", err, "Error deleting experiment: "+err.Error(), "/app")
		return
	}

	h.Log.Info("experiment deleted", zap.String("experiment_id", id.Hex()))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| form parsing                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// parseExperimentForm builds an experiment from form fields. Free-text
// fields are sanitized; numeric fields treat blank as zero.
func parseExperimentForm(r *http.Request) (models.Experiment, error) {
	if err := r.ParseForm(); err != nil {
		return models.Experiment{}, fmt.Errorf("invalid form data")
	}

	var e models.Experiment

	if beanHex := strings.TrimSpace(r.FormValue("bean_id")); beanHex != "" {
		id, err := primitive.ObjectIDFromHex(beanHex)
		if err != nil {
			return models.Experiment{}, fmt.Errorf("invalid bean selection")
		}
		e.BeanID = id
	}
	if machineHex := strings.TrimSpace(r.FormValue("machine_id")); machineHex != "" {
		id, err := primitive.ObjectIDFromHex(machineHex)
		if err != nil {
			return models.Experiment{}, fmt.Errorf("invalid machine selection")
		}
		e.MachineID = &id
	}

	var err error
	b := &e.Brew
	b.Method = htmlsanitize.Text(r.FormValue("method"))
	if b.GrindSize, err = formFloat(r, "grind_size"); err != nil {
		return models.Experiment{}, err
	}
	if b.Dose, err = formFloat(r, "dose"); err != nil {
		return models.Experiment{}, err
	}
	if b.Yield, err = formFloat(r, "yield"); err != nil {
		return models.Experiment{}, err
	}
	if b.WaterTemp, err = formFloat(r, "water_temp"); err != nil {
		return models.Experiment{}, err
	}
	if b.BrewTime, err = formFloat(r, "brew_time"); err != nil {
		return models.Experiment{}, err
	}

	e.Flavor = htmlsanitize.Text(r.FormValue("flavor"))
	e.Behavior = htmlsanitize.Text(r.FormValue("behavior"))
	e.Sensory = htmlsanitize.Text(r.FormValue("sensory"))
	e.Notes = htmlsanitize.Text(r.FormValue("notes"))

	return e, nil
}

func formFloat(r *http.Request, field string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", strings.ReplaceAll(field, "_", " "))
	}
	return v, nil
}
