// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/brewlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the users collection. Documents are keyed by the opaque
// identity id (a string), not a generated ObjectID.
type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an account with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Get returns the user document for an identity id.
// Returns mongo.ErrNoDocuments when absent.
func (s *Store) Get(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail returns the user with the given email (lowercased before
// comparison). Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a new user document. New accounts always start
// unapproved and non-admin; approval is an admin action.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.Email = normalizeEmail(u.Email)
	u.Approved = false
	u.Admin = false
	u.CreatedAt = time.Now().UTC()

	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// EnsureForIdentity returns the user document for id, creating it with
// approved=false, admin=false if it does not exist. This self-heals the
// case where the identity exists but the document was never written.
func (s *Store) EnsureForIdentity(ctx context.Context, id, email, authMethod string) (models.User, error) {
	u, err := s.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	_, err = s.Create(ctx, models.User{
		ID:         id,
		Email:      email,
		AuthMethod: authMethod,
	})
	if err != nil && !errors.Is(err, ErrDuplicateEmail) {
		return models.User{}, err
	}
	// Re-fetch so callers see exactly what is stored.
	return s.Get(ctx, id)
}

// SetApproved flips the approval flag for a user.
func (s *Store) SetApproved(ctx context.Context, id string, approved bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"approved": approved}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PromoteAdmin grants admin (and approval) to the user with the given
// email, if one exists. Used by the superadmin bootstrap on startup.
func (s *Store) PromoteAdmin(ctx context.Context, email string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalizeEmail(email)},
		bson.M{"$set": bson.M{"admin": true, "approved": true}})
	return err
}

// ListPending returns unapproved accounts, oldest first, for the admin
// approvals page.
func (s *Store) ListPending(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"approved": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
