// internal/domain/models/machine.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Machine is a logged espresso-machine record. Same lifecycle as Bean:
// create and delete only.
type Machine struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
