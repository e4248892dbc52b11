// internal/domain/models/bean.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bean is a logged coffee-bean source record. Beans are immutable once
// created; there is no update path, only create and delete.
type Bean struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Origin     string             `bson:"origin,omitempty" json:"origin,omitempty"`
	Variety    string             `bson:"variety,omitempty" json:"variety,omitempty"`
	Process    string             `bson:"process,omitempty" json:"process,omitempty"`
	RoastLevel string             `bson:"roast_level,omitempty" json:"roast_level,omitempty"`
	RoastDate  string             `bson:"roast_date,omitempty" json:"roast_date,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// DisplayName is how a bean is labeled in selects and on cards.
func (b Bean) DisplayName() string {
	if b.RoastLevel == "" {
		return b.Name
	}
	return b.Name + " (" + b.RoastLevel + ")"
}
