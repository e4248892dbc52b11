package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "test-session-key-for-testing-only"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	m := newManager(t)

	// Sign in and capture the cookie.
	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()
	if err := m.SignIn(rec, req, "uid-1", "a@b.com"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req2 := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "uid-1" || got.Email != "a@b.com" {
		t.Errorf("got %+v", got)
	}
}

type fakeFetcher struct {
	users map[string]*auth.SessionUser
}

func (f *fakeFetcher) FetchSessionUser(_ context.Context, id string) (*auth.SessionUser, error) {
	return f.users[id], nil
}

func TestLoadSessionUser_FetcherRefreshesApproval(t *testing.T) {
	m := newManager(t)
	fetcher := &fakeFetcher{users: map[string]*auth.SessionUser{
		"uid-1": {ID: "uid-1", Email: "a@b.com", Approved: true, Admin: true},
	}}
	m.SetUserFetcher(fetcher)

	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()
	if err := m.SignIn(rec, req, "uid-1", "a@b.com"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	var got *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req2 := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil || !got.Approved || !got.Admin {
		t.Fatalf("expected fetched approved admin user, got %+v", got)
	}
}

func TestLoadSessionUser_MissingDocTreatedAsSignedOut(t *testing.T) {
	m := newManager(t)
	m.SetUserFetcher(&fakeFetcher{users: map[string]*auth.SessionUser{}})

	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()
	_ = m.SignIn(rec, req, "gone", "gone@b.com")

	found := false
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	}))
	req2 := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if found {
		t.Error("expected no user in context when document is missing")
	}
}

func TestRequireSignedIn_RedirectsAnonymousHTML(t *testing.T) {
	m := newManager(t)
	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/app", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Fapp" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestRequireApproved_UnapprovedGoesToPending(t *testing.T) {
	m := newManager(t)
	h := m.RequireApproved(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/app", nil)
	req.Header.Set("Accept", "text/html")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Email: "u@b.com", Approved: false})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/pending" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestRequireApproved_ApprovedPasses(t *testing.T) {
	m := newManager(t)
	ran := false
	h := m.RequireApproved(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest("GET", "/app", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Approved: true})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !ran {
		t.Error("expected handler to run for approved user")
	}
}

func TestRequireAdmin_NonAdminForbidden(t *testing.T) {
	m := newManager(t)
	h := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/approvals", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Approved: true, Admin: false})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestSignOut_DeletesCookie(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()
	if err := m.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected session cookie set for deletion")
	}
}
