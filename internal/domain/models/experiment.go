// internal/domain/models/experiment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brew holds the parameter set for one pull.
//
// GrindSize is numeric because several grinders in use have signed dial
// scales (negative = finer than the zero detent); the simulator does
// arithmetic on it.
type Brew struct {
	Method    string  `bson:"method" json:"method"`
	GrindSize float64 `bson:"grind_size" json:"grindSize"`
	Dose      float64 `bson:"dose" json:"dose"`
	Yield     float64 `bson:"yield,omitempty" json:"yield,omitempty"`
	WaterTemp float64 `bson:"water_temp" json:"waterTemp"`
	BrewTime  float64 `bson:"brew_time" json:"brewTime"`
}

// Experiment is a logged brew session with parameters and observed
// outcome. It is the only entity with an ownership invariant: update and
// delete are permitted to the owner or an admin only.
type Experiment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BeanID    primitive.ObjectID  `bson:"bean_id" json:"beanId"`
	MachineID *primitive.ObjectID `bson:"machine_id,omitempty" json:"machineId,omitempty"`

	Flavor   string `bson:"flavor,omitempty" json:"flavor,omitempty"`
	Brew     Brew   `bson:"brew" json:"brew"`
	Behavior string `bson:"behavior,omitempty" json:"behavior,omitempty"`
	Sensory  string `bson:"sensory,omitempty" json:"sensory,omitempty"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`

	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// FlavorProfiles enumerates the optional flavor categorization on an
// experiment. The Notes field doubles as the adjustment-direction label
// consumed by the sweet-spot simulator ("Grind Coarser", "Adjust Dose").
var FlavorProfiles = []string{
	"Sour / Underextracted",
	"Balanced",
	"Bitter / Overextracted",
}
