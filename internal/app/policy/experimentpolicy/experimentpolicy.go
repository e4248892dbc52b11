// Package experimentpolicy provides the one resource-level authorization
// rule this application has.
//
// Authorization rules:
//   - The owning user can update and delete their own experiments
//   - Admins can update and delete any experiment
//   - Any approved user can create experiments and read all of them
package experimentpolicy

import (
	"net/http"

	"github.com/dalemusser/brewlab/internal/app/system/authz"
	"github.com/dalemusser/brewlab/internal/domain/models"
)

// CanModify reports whether the current request's user may update or
// delete the given experiment. This is the server-side enforcement of
// the gate the card renderer applies to the Edit/Delete controls.
func CanModify(r *http.Request, e models.Experiment) bool {
	return authz.CanModifyExperiment(r, e.UserID)
}

// CanModifyAs is the request-free form, for callers that already hold
// the user identity (the SSE renderer and tests).
func CanModifyAs(e models.Experiment, userID string, isAdmin bool) bool {
	return isAdmin || (e.UserID != "" && e.UserID == userID)
}
