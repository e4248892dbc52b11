// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/brewlab/internal/app/features/errors"
	userstore "github.com/dalemusser/brewlab/internal/app/store/users"
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/dalemusser/brewlab/internal/app/system/timeouts"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookieName = "brewlab_oauth_state"
	stateCookieAge  = 10 * time.Minute
	userinfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Handler implements the Google OAuth code flow. The state value is
// stored in an encoded cookie and must round-trip through the callback.
type Handler struct {
	Users  *userstore.Store
	Log    *zap.Logger
	SM     *auth.SessionManager
	ErrLog *uierrors.ErrorLogger

	oauthCfg *oauth2.Config
	cookies  *securecookie.SecureCookie
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, errLog *uierrors.ErrorLogger,
	clientID, clientSecret, baseURL string, cookieKey []byte, logger *zap.Logger) *Handler {

	return &Handler{
		Users:  userstore.New(db),
		Log:    logger,
		SM:     sm,
		ErrLog: errLog,
		oauthCfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email"},
			Endpoint:     google.Endpoint,
		},
		cookies: securecookie.New(cookieKey, nil),
	}
}

// Enabled reports whether a client ID was configured.
func (h *Handler) Enabled() bool {
	return h.oauthCfg.ClientID != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	encoded, err := h.cookies.Encode(stateCookieName, state)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "encode oauth state failed", err, "Could not start Google sign-in.", "/login")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   int(stateCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauthCfg.AuthCodeURL(state), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var wantState string
	if c, err := r.Cookie(stateCookieName); err != nil {
		h.ErrLog.LogBadRequest(w, r, "oauth state cookie missing", err, "Google sign-in expired. Please try again.", "/login")
		return
	} else if err := h.cookies.Decode(stateCookieName, c.Value, &wantState); err != nil {
		h.ErrLog.LogBadRequest(w, r, "oauth state cookie invalid", err, "Google sign-in expired. Please try again.", "/login")
		return
	}

	// One-shot cookie.
	http.SetCookie(w, &http.Cookie{
		Name: stateCookieName, Path: "/auth/google", MaxAge: -1, HttpOnly: true,
	})

	if got := r.URL.Query().Get("state"); got == "" || got != wantState {
		h.ErrLog.LogBadRequest(w, r, "oauth state mismatch", fmt.Errorf("state mismatch"), "Google sign-in failed. Please try again.", "/login")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.ErrLog.LogBadRequest(w, r, "oauth code missing", fmt.Errorf("missing code"), "Google sign-in was cancelled.", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	tok, err := h.oauthCfg.Exchange(ctx, code)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "oauth code exchange failed", err, "Google sign-in failed.", "/login")
		return
	}

	info, err := h.fetchUserInfo(ctx, tok)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "google userinfo fetch failed", err, "Google sign-in failed.", "/login")
		return
	}
	if info.ID == "" || info.Email == "" {
		h.ErrLog.LogServerError(w, r, "google userinfo incomplete", fmt.Errorf("empty id or email"), "Google sign-in failed.", "/login")
		return
	}

	// The Google subject is the account identity; the user document is
	// created lazily with approved=false on first sign-in.
	userID := "google:" + info.ID
	if _, err := h.Users.EnsureForIdentity(ctx, userID, info.Email, "google"); err != nil {
		h.ErrLog.LogServerError(w, r, "ensure user document failed", err, "A database error occurred.", "/login")
		return
	}

	if err := h.SM.SignIn(w, r, userID, info.Email); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Could not sign you in.", "/login")
		return
	}

	h.Log.Info("google sign-in", zap.String("user_id", userID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauthCfg.Client(ctx, tok)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
