// internal/app/store/experiments/experimentstore.go
package experimentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store wraps the experiments collection.
type Store struct {
	c   *mongo.Collection
	hub *live.Hub
}

var (
	ErrBeanRequired  = errors.New("select a bean first")
	ErrOwnerRequired = errors.New("experiment must have an owning user")
)

// New builds the store. hub may be nil (tests).
func New(db *mongo.Database, hub *live.Hub) *Store {
	return &Store{c: db.Collection("experiments"), hub: hub}
}

// Create inserts a new experiment with a generated id and timestamp.
// A bean reference is required; everything else is optional.
func (s *Store) Create(ctx context.Context, e models.Experiment) (models.Experiment, error) {
	if e.BeanID.IsZero() {
		return models.Experiment{}, ErrBeanRequired
	}
	if e.UserID == "" {
		return models.Experiment{}, ErrOwnerRequired
	}

	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Experiment{}, err
	}
	s.notify(ctx)
	return e, nil
}

// Update merges the supplied fields into an existing document. The owner
// and creation timestamp never change on update; authorization is the
// policy layer's job, not the store's.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Experiment) error {
	if mut.BeanID.IsZero() {
		return ErrBeanRequired
	}

	set := bson.M{
		"bean_id":  mut.BeanID,
		"flavor":   mut.Flavor,
		"brew":     mut.Brew,
		"behavior": mut.Behavior,
		"sensory":  mut.Sensory,
		"notes":    mut.Notes,
	}
	if mut.MachineID != nil {
		set["machine_id"] = mut.MachineID
	} else {
		// Cleared machine selection removes the reference.
		_, err := s.c.UpdateByID(ctx, id, bson.M{"$unset": bson.M{"machine_id": ""}})
		if err != nil {
			return err
		}
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	s.notify(ctx)
	return nil
}

// GetByID returns an experiment by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Experiment, error) {
	var e models.Experiment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		return models.Experiment{}, err
	}
	return e, nil
}

// Delete hard-deletes an experiment. No tombstone, no audit trail.
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

// List returns the collection's full contents in natural order, the
// order cards render in.
func (s *Store) List(ctx context.Context) ([]models.Experiment, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Experiment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) notify(ctx context.Context) {
	if s.hub != nil {
		s.hub.Experiments.Notify(ctx)
	}
}
