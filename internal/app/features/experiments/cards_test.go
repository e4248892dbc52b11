// internal/app/features/experiments/cards_test.go
package experiments

import (
	"strings"
	"testing"

	"github.com/dalemusser/brewlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildCardsResolvesReferences(t *testing.T) {
	bean := models.Bean{ID: primitive.NewObjectID(), Name: "Gedeb", RoastLevel: "Light"}
	machine := models.Machine{ID: primitive.NewObjectID(), Name: "Gaggia Classic"}

	exp := models.Experiment{
		ID:        primitive.NewObjectID(),
		BeanID:    bean.ID,
		MachineID: &machine.ID,
		UserID:    "u1",
		Brew:      models.Brew{Yield: 36},
	}

	cards := BuildCards(
		[]models.Experiment{exp},
		[]models.Bean{bean},
		[]models.Machine{machine},
		"u1", false,
	)

	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	c := cards[0]
	if c.BeanLabel != "Gedeb (Light)" {
		t.Errorf("BeanLabel = %q, want %q", c.BeanLabel, "Gedeb (Light)")
	}
	if c.MachineLabel != "Gaggia Classic" {
		t.Errorf("MachineLabel = %q", c.MachineLabel)
	}
	if !c.CanModify {
		t.Error("owner should be able to modify")
	}
	if c.YieldLabel != "36 g" {
		t.Errorf("YieldLabel = %q, want %q", c.YieldLabel, "36 g")
	}
}

func TestBuildCardsDanglingReferences(t *testing.T) {
	machineID := primitive.NewObjectID()
	exp := models.Experiment{
		ID:        primitive.NewObjectID(),
		BeanID:    primitive.NewObjectID(), // matches nothing
		MachineID: &machineID,              // matches nothing
		UserID:    "u1",
	}

	cards := BuildCards([]models.Experiment{exp}, nil, nil, "u2", false)

	if got := cards[0].BeanLabel; got != "Unknown Bean" {
		t.Errorf("BeanLabel = %q, want Unknown Bean", got)
	}
	if got := cards[0].MachineLabel; got != "Unknown Machine" {
		t.Errorf("MachineLabel = %q, want Unknown Machine", got)
	}
}

func TestBuildCardsNoMachineSelected(t *testing.T) {
	exp := models.Experiment{ID: primitive.NewObjectID(), BeanID: primitive.NewObjectID(), UserID: "u1"}

	cards := BuildCards([]models.Experiment{exp}, nil, nil, "u1", false)

	if got := cards[0].MachineLabel; got != "—" {
		t.Errorf("MachineLabel = %q, want placeholder", got)
	}
}

func TestBuildCardsPlaceholdersForOptionalFields(t *testing.T) {
	exp := models.Experiment{ID: primitive.NewObjectID(), BeanID: primitive.NewObjectID(), UserID: "u1"}

	c := BuildCards([]models.Experiment{exp}, nil, nil, "u1", false)[0]

	for name, got := range map[string]string{
		"Flavor":     c.Flavor,
		"Behavior":   c.Behavior,
		"Sensory":    c.Sensory,
		"Notes":      c.Notes,
		"YieldLabel": c.YieldLabel,
	} {
		if got != "—" {
			t.Errorf("%s = %q, want placeholder", name, got)
		}
	}
}

func TestBuildCardsOwnershipGate(t *testing.T) {
	exp := models.Experiment{ID: primitive.NewObjectID(), BeanID: primitive.NewObjectID(), UserID: "owner"}

	cases := []struct {
		name    string
		userID  string
		isAdmin bool
		want    bool
	}{
		{"owner", "owner", false, true},
		{"other user", "stranger", false, false},
		{"admin", "stranger", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := BuildCards([]models.Experiment{exp}, nil, nil, tc.userID, tc.isAdmin)[0]
			if c.CanModify != tc.want {
				t.Errorf("CanModify = %v, want %v", c.CanModify, tc.want)
			}
		})
	}
}

func TestBuildCardsPreservesOrder(t *testing.T) {
	var exps []models.Experiment
	var ids []string
	for i := 0; i < 5; i++ {
		e := models.Experiment{ID: primitive.NewObjectID(), BeanID: primitive.NewObjectID(), UserID: "u1"}
		exps = append(exps, e)
		ids = append(ids, e.ID.Hex())
	}

	cards := BuildCards(exps, nil, nil, "u1", false)

	for i, c := range cards {
		if c.ID != ids[i] {
			t.Fatalf("card %d out of order", i)
		}
	}
}

func TestRenderCardsHTML(t *testing.T) {
	bean := models.Bean{ID: primitive.NewObjectID(), Name: "Huila", RoastLevel: "Medium"}
	own := models.Experiment{ID: primitive.NewObjectID(), BeanID: bean.ID, UserID: "u1"}
	other := models.Experiment{ID: primitive.NewObjectID(), BeanID: bean.ID, UserID: "someone-else"}

	cards := BuildCards([]models.Experiment{own, other}, []models.Bean{bean}, nil, "u1", false)

	html, err := RenderCardsHTML(cards)
	if err != nil {
		t.Fatalf("RenderCardsHTML: %v", err)
	}

	if !strings.Contains(html, "Huila (Medium)") {
		t.Error("rendered cards missing bean label")
	}
	if got := strings.Count(html, "btn-danger"); got != 1 {
		t.Errorf("delete buttons = %d, want 1 (only the owned card)", got)
	}
	if !strings.Contains(html, own.ID.Hex()) {
		t.Error("rendered cards missing experiment id")
	}
	if got := strings.Count(html, "data-nudge"); got != 4 {
		t.Errorf("nudge buttons = %d, want 4 (a pair per card)", got)
	}
}

func TestRenderCardsHTMLEmpty(t *testing.T) {
	html, err := RenderCardsHTML(nil)
	if err != nil {
		t.Fatalf("RenderCardsHTML: %v", err)
	}
	if !strings.Contains(html, "No experiments logged yet") {
		t.Error("empty state not rendered")
	}
}
