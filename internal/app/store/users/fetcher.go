// internal/app/store/users/fetcher.go
package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts the user store to auth.UserFetcher so LoadSessionUser
// re-reads approval/admin state on each request.
type Fetcher struct {
	store *Store
}

func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchSessionUser returns (nil, nil) when the user document is missing,
// which the middleware treats as signed out.
func (f *Fetcher) FetchSessionUser(ctx context.Context, id string) (*auth.SessionUser, error) {
	u, err := f.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &auth.SessionUser{
		ID:       u.ID,
		Email:    u.Email,
		Approved: u.Approved,
		Admin:    u.Admin,
	}, nil
}
