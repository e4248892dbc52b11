// internal/app/store/beans/beanstore_test.go
package beanstore

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"github.com/dalemusser/brewlab/internal/testutil"
	"go.uber.org/zap"
)

func TestCreateRequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)

	_, err := store.Create(context.Background(), models.Bean{Name: "   "})
	if !errors.Is(err, ErrNameRequired) {
		t.Errorf("got %v, want ErrNameRequired", err)
	}
}

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Bean{Name: "Gedeb", Origin: "Ethiopia", RoastLevel: "Light"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("Create did not assign an id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create did not stamp created_at")
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Gedeb" {
		t.Errorf("List = %+v", list)
	}
}

func TestDeleteMissingIsNotAnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)

	bean, err := store.Create(context.Background(), models.Bean{Name: "gone"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := store.Delete(context.Background(), bean.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = (%d, %v)", n, err)
	}
	n, err = store.Delete(context.Background(), bean.ID)
	if err != nil || n != 0 {
		t.Errorf("second Delete = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMutationsNotifyHub(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	loader := New(db, nil)
	hub := live.NewHub(live.Loaders{
		Beans:       loader.List,
		Machines:    func(context.Context) ([]models.Machine, error) { return nil, nil },
		Experiments: func(context.Context) ([]models.Experiment, error) { return nil, nil },
	}, zap.NewNop())

	var fires atomic.Int32
	unsub, err := hub.Beans.Subscribe(ctx, func([]models.Bean) { fires.Add(1) })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsub()
	if got := fires.Load(); got != 1 {
		t.Fatalf("initial deliveries = %d, want 1", got)
	}

	store := New(db, hub)
	bean, err := store.Create(ctx, models.Bean{Name: "notify me"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := fires.Load(); got != 2 {
		t.Errorf("after create fires = %d, want 2", got)
	}

	if _, err := store.Delete(ctx, bean.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := fires.Load(); got != 3 {
		t.Errorf("after delete fires = %d, want 3", got)
	}
}
