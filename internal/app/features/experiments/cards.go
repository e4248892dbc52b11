// internal/app/features/experiments/cards.go
package experiments

import (
	"strconv"
	"time"

	"github.com/dalemusser/brewlab/internal/app/policy/experimentpolicy"
	"github.com/dalemusser/brewlab/internal/domain/models"
)

// Card is the display model for one experiment. Every field is
// presentation-ready: references are resolved to labels and absent
// optionals carry an explicit placeholder so nothing renders blank.
type Card struct {
	ID           string
	BeanLabel    string
	MachineLabel string
	Flavor       string
	Brew         models.Brew
	YieldLabel   string
	Behavior     string
	Sensory      string
	Notes        string
	CreatedAt    time.Time
	CanModify    bool
}

const (
	unknownBean    = "Unknown Bean"
	unknownMachine = "Unknown Machine"
	placeholder    = "—"
)

// BuildCards derives the card list from the three collection snapshots
// and the viewer's identity. Pure: order follows the experiments slice,
// and a dangling bean or machine reference degrades to an "Unknown"
// label rather than failing.
func BuildCards(exps []models.Experiment, beans []models.Bean, machines []models.Machine, userID string, isAdmin bool) []Card {
	beanLabels := make(map[string]string, len(beans))
	for _, b := range beans {
		beanLabels[b.ID.Hex()] = b.DisplayName()
	}
	machineLabels := make(map[string]string, len(machines))
	for _, m := range machines {
		machineLabels[m.ID.Hex()] = m.Name
	}

	cards := make([]Card, 0, len(exps))
	for _, e := range exps {
		c := Card{
			ID:         e.ID.Hex(),
			BeanLabel:  unknownBean,
			Brew:       e.Brew,
			YieldLabel: yieldLabel(e.Brew.Yield),
			Flavor:     orPlaceholder(e.Flavor),
			Behavior:   orPlaceholder(e.Behavior),
			Sensory:    orPlaceholder(e.Sensory),
			Notes:      orPlaceholder(e.Notes),
			CreatedAt:  e.CreatedAt,
			CanModify:  experimentpolicy.CanModifyAs(e, userID, isAdmin),
		}

		if label, ok := beanLabels[e.BeanID.Hex()]; ok {
			c.BeanLabel = label
		}

		switch {
		case e.MachineID == nil:
			c.MachineLabel = placeholder
		default:
			c.MachineLabel = unknownMachine
			if label, ok := machineLabels[e.MachineID.Hex()]; ok {
				c.MachineLabel = label
			}
		}

		cards = append(cards, c)
	}
	return cards
}

// yieldLabel formats the yield for display. Yield is the one optional
// numeric field, so its zero value means "not recorded" and renders the
// placeholder rather than a bare zero.
func yieldLabel(yield float64) string {
	if yield == 0 {
		return placeholder
	}
	return strconv.FormatFloat(yield, 'f', -1, 64) + " g"
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
