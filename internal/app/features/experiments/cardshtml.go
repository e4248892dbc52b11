// internal/app/features/experiments/cardshtml.go
package experiments

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed views/templates/cards.gohtml
var cardsFS embed.FS

var cardsTmpl = template.Must(template.ParseFS(cardsFS, "views/templates/cards.gohtml"))

// RenderCardsHTML executes the card-list fragment standalone, outside
// the page template engine. The live stream uses it to push re-rendered
// cards to connected sessions.
func RenderCardsHTML(cards []Card) (string, error) {
	var buf bytes.Buffer
	if err := cardsTmpl.ExecuteTemplate(&buf, "experiment_cards", cards); err != nil {
		return "", err
	}
	return buf.String(), nil
}
