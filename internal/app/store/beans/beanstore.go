// internal/app/store/beans/beanstore.go
package beanstore

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

// Store wraps the beans collection. Beans are immutable once created:
// there is create, read, and delete, but no update.
type Store struct {
	c   *mongo.Collection
	hub *live.Hub
}

var ErrNameRequired = errors.New("bean name is required")

// New builds the store. hub may be nil (tests); when set, successful
// mutations notify the beans feed.
func New(db *mongo.Database, hub *live.Hub) *Store {
	return &Store{c: db.Collection("beans"), hub: hub}
}

// Create inserts a new bean with a generated id and timestamp.
func (s *Store) Create(ctx context.Context, b models.Bean) (models.Bean, error) {
	if strings.TrimSpace(b.Name) == "" {
		return models.Bean{}, ErrNameRequired
	}

	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Bean{}, err
	}
	s.notify(ctx)
	return b, nil
}

// Delete hard-deletes a bean. Experiments referencing it are left alone;
// the renderer substitutes "Unknown Bean" for dangling references.
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

// List returns the collection's full contents in natural order, which is
// the order live snapshots deliver. No explicit sort is applied.
func (s *Store) List(ctx context.Context) ([]models.Bean, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Bean
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) notify(ctx context.Context) {
	if s.hub != nil {
		s.hub.Beans.Notify(ctx)
	}
}
