// internal/app/store/machines/machinestore.go
package machinestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store wraps the machines collection. Same lifecycle as beans: create
// and delete only.
type Store struct {
	c   *mongo.Collection
	hub *live.Hub
}

var ErrNameRequired = errors.New("machine name is required")

// New builds the store. hub may be nil (tests).
func New(db *mongo.Database, hub *live.Hub) *Store {
	return &Store{c: db.Collection("machines"), hub: hub}
}

// Create inserts a new machine with a generated id and timestamp.
func (s *Store) Create(ctx context.Context, m models.Machine) (models.Machine, error) {
	if strings.TrimSpace(m.Name) == "" {
		return models.Machine{}, ErrNameRequired
	}

	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Machine{}, err
	}
	s.notify(ctx)
	return m, nil
}

// Delete hard-deletes a machine.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount > 0 {
		s.notify(ctx)
	}
	return res.DeletedCount, nil
}

// List returns the collection's full contents in natural order.
func (s *Store) List(ctx context.Context) ([]models.Machine, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Machine
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) notify(ctx context.Context) {
	if s.hub != nil {
		s.hub.Machines.Notify(ctx)
	}
}
