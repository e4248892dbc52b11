// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize holds the shared bluemonday policies for
// user-entered free text (behavior, sensory, and outcome notes).
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every tag; the card surfaces render plain text only.
var strict = bluemonday.StrictPolicy()

// Text sanitizes a free-text field for safe interpolation into pages and
// SSE payloads, collapsing surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
