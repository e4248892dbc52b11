// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/brewlab/internal/app/system/auth"
)

// UserCtx returns the current user's id, email, admin flag, and a found
// flag. ok=true means a valid, authenticated (though not necessarily
// approved) user is present in context.
func UserCtx(r *http.Request) (userID, email string, isAdmin bool, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", false, false
	}
	return u.ID, u.Email, u.Admin, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.Admin
}

// IsApproved reports whether the current request's user has been approved.
func IsApproved(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.Approved
}

// CanModifyExperiment reports whether the current user may edit or delete
// an experiment owned by ownerID. Owners and admins may; everyone else
// may not.
func CanModifyExperiment(r *http.Request, ownerID string) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return u.Admin || (ownerID != "" && u.ID == ownerID)
}
