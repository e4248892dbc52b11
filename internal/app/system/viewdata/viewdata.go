// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/brewlab/internal/app/system/auth"
)

// SiteName is the display name used across page templates.
const SiteName = "BrewLab"

// BaseVM contains common fields for all view models. Embed it in
// feature-specific view models:
//
//	type pageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	IsApproved bool
	IsAdmin    bool
	UserEmail  string

	// Page context
	Title       string
	CurrentPath string
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		CurrentPath: r.URL.Path,
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.IsApproved = u.Approved
		vm.IsAdmin = u.Admin
		vm.UserEmail = u.Email
	}
	return vm
}
