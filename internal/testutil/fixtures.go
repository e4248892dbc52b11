// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user document directly.
func (f *Fixtures) CreateUser(ctx context.Context, email string, approved, admin bool) models.User {
	f.t.Helper()

	u := models.User{
		ID:         uuid.NewString(),
		Email:      email,
		Approved:   approved,
		Admin:      admin,
		AuthMethod: "password",
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create user fixture: %v", err)
	}
	return u
}

// CreateBean inserts a bean document directly.
func (f *Fixtures) CreateBean(ctx context.Context, name, roastLevel string) models.Bean {
	f.t.Helper()

	b := models.Bean{
		ID:         primitive.NewObjectID(),
		Name:       name,
		RoastLevel: roastLevel,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("beans").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("create bean fixture: %v", err)
	}
	return b
}

// CreateMachine inserts a machine document directly.
func (f *Fixtures) CreateMachine(ctx context.Context, name string) models.Machine {
	f.t.Helper()

	m := models.Machine{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("machines").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("create machine fixture: %v", err)
	}
	return m
}

// CreateExperiment inserts an experiment owned by userID referencing the
// given bean.
func (f *Fixtures) CreateExperiment(ctx context.Context, beanID primitive.ObjectID, userID string) models.Experiment {
	f.t.Helper()

	e := models.Experiment{
		ID:     primitive.NewObjectID(),
		BeanID: beanID,
		UserID: userID,
		Brew: models.Brew{
			Method:    "espresso",
			GrindSize: -5,
			Dose:      18,
			Yield:     36,
			WaterTemp: 93,
			BrewTime:  28,
		},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("experiments").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("create experiment fixture: %v", err)
	}
	return e
}
