// internal/app/store/users/userstore_test.go
package userstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/brewlab/internal/app/system/indexes"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/dalemusser/brewlab/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) (*Store, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx := context.Background()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return New(db), ctx
}

func TestCreateForcesUnapproved(t *testing.T) {
	store, ctx := setup(t)

	u, err := store.Create(ctx, models.User{
		ID:       uuid.NewString(),
		Email:    "  New.Person@Example.COM ",
		Approved: true, // must be ignored
		Admin:    true, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if u.Approved || u.Admin {
		t.Error("new account must start unapproved and non-admin")
	}
	if u.Email != "new.person@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Approved || got.Admin {
		t.Error("stored document must be unapproved and non-admin")
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	store, ctx := setup(t)

	_, err := store.Create(ctx, models.User{ID: uuid.NewString(), Email: "dup@example.com"})
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err = store.Create(ctx, models.User{ID: uuid.NewString(), Email: "DUP@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestEnsureForIdentityCreatesLazily(t *testing.T) {
	store, ctx := setup(t)
	id := uuid.NewString()

	u, err := store.EnsureForIdentity(ctx, id, "lazy@example.com", "password")
	if err != nil {
		t.Fatalf("EnsureForIdentity: %v", err)
	}
	if u.ID != id || u.Approved || u.Admin {
		t.Errorf("lazy-created user = %+v", u)
	}

	// Second call returns the existing document untouched.
	if err := store.SetApproved(ctx, id, true); err != nil {
		t.Fatalf("SetApproved: %v", err)
	}
	again, err := store.EnsureForIdentity(ctx, id, "lazy@example.com", "password")
	if err != nil {
		t.Fatalf("EnsureForIdentity again: %v", err)
	}
	if !again.Approved {
		t.Error("existing document was overwritten")
	}
}

func TestSetApprovedMissingUser(t *testing.T) {
	store, ctx := setup(t)

	err := store.SetApproved(ctx, "no-such-id", true)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("got %v, want ErrNoDocuments", err)
	}
}

func TestPromoteAdmin(t *testing.T) {
	store, ctx := setup(t)

	u, err := store.Create(ctx, models.User{ID: uuid.NewString(), Email: "boss@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.PromoteAdmin(ctx, "Boss@Example.com"); err != nil {
		t.Fatalf("PromoteAdmin: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Admin || !got.Approved {
		t.Errorf("promoted user = %+v, want admin and approved", got)
	}
}

func TestListPendingOldestFirst(t *testing.T) {
	store, ctx := setup(t)

	first, err := store.Create(ctx, models.User{ID: uuid.NewString(), Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := store.Create(ctx, models.User{ID: uuid.NewString(), Email: "b@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Approved accounts never appear.
	if err := store.SetApproved(ctx, second.ID, true); err != nil {
		t.Fatalf("SetApproved: %v", err)
	}
	third, err := store.Create(ctx, models.User{ID: uuid.NewString(), Email: "c@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := store.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	if pending[0].ID != first.ID || pending[1].ID != third.ID {
		t.Error("pending list not oldest-first")
	}
}
