// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/brewlab/internal/app/features/errors"
	_ "github.com/dalemusser/brewlab/internal/app/features/login/views"
	userstore "github.com/dalemusser/brewlab/internal/app/store/users"
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/dalemusser/brewlab/internal/app/system/viewdata"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Users         *userstore.Store
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	GoogleEnabled bool
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		Users:         userstore.New(db),
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		GoogleEnabled: googleEnabled,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	SignupMode    bool // toggles the form between Login and Sign Up
	GoogleEnabled bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// Already-authenticated users have no business on the login page.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login"),
		SignupMode:    r.URL.Query().Get("mode") == "signup",
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email, false)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.renderFormWithError(w, r, "Invalid email or password.", email, false)
			return
		}
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "A database error occurred.", "/login")
		return
	}

	if u.PasswordHash == "" {
		// Google-only account; no password to check.
		h.renderFormWithError(w, r, "This account signs in with Google.", email, false)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.renderFormWithError(w, r, "Invalid email or password.", email, false)
		return
	}

	h.completeSignIn(w, r, u.ID, u.Email)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login/signup                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter an email and a password.", email, true)
		return
	}
	if len(password) < 8 {
		h.renderFormWithError(w, r, "Password must be at least 8 characters.", email, true)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "bcrypt hash failed", err, "Could not create the account.", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		AuthMethod:   "password",
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			h.renderFormWithError(w, r, err.Error(), email, true)
			return
		}
		h.ErrLog.LogServerError(w, r, "user create failed", err, "Could not create the account.", "/login")
		return
	}

	h.Log.Info("account created",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email))

	// New accounts are unapproved; the home gate routes them to /pending.
	h.completeSignIn(w, r, u.ID, u.Email)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// completeSignIn self-heals a missing user document before establishing
// the session, so an identity that exists without a document still ends
// up with approved=false, admin=false on record.
func (h *Handler) completeSignIn(w http.ResponseWriter, r *http.Request, userID, email string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.EnsureForIdentity(ctx, userID, email, "password"); err != nil {
		h.ErrLog.LogServerError(w, r, "ensure user document failed", err, "A database error occurred.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, userID, email); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Could not sign you in.", "/login")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string, signup bool) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login"),
		Error:         msg,
		Email:         email,
		SignupMode:    signup,
		GoogleEnabled: h.GoogleEnabled,
	})
}
