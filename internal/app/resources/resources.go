// internal/app/resources/resources.go
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Site-wide layout chrome (header, nav, footer) used by every page set.
//
//go:embed templates/*.gohtml
var FS embed.FS

var registerOnce sync.Once

// LoadLayoutTemplates registers the layout set with the template engine.
// Safe to call more than once; only the first call registers.
func LoadLayoutTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "layout",
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}
