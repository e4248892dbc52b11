package live_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/brewlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// memory backs the hub loaders with plain slices so tests need no Mongo.
type memory struct {
	beans       []models.Bean
	machines    []models.Machine
	experiments []models.Experiment
}

func (m *memory) loaders() live.Loaders {
	return live.Loaders{
		Beans:       func(context.Context) ([]models.Bean, error) { return m.beans, nil },
		Machines:    func(context.Context) ([]models.Machine, error) { return m.machines, nil },
		Experiments: func(context.Context) ([]models.Experiment, error) { return m.experiments, nil },
	}
}

func TestFeed_SubscribeDeliversCurrentContents(t *testing.T) {
	mem := &memory{beans: []models.Bean{{Name: "Yirgacheffe"}}}
	hub := live.NewHub(mem.loaders(), zap.NewNop())

	var got []models.Bean
	unsub, err := hub.Beans.Subscribe(context.Background(), func(items []models.Bean) {
		got = items
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsub()

	if len(got) != 1 || got[0].Name != "Yirgacheffe" {
		t.Errorf("initial delivery: got %+v", got)
	}
}

func TestFeed_NotifyDeliversFullSnapshot(t *testing.T) {
	mem := &memory{}
	hub := live.NewHub(mem.loaders(), zap.NewNop())

	calls := 0
	var last []models.Machine
	unsub, err := hub.Machines.Subscribe(context.Background(), func(items []models.Machine) {
		calls++
		last = items
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsub()

	mem.machines = []models.Machine{{Name: "Gaggia"}, {Name: "La Pavoni"}}
	hub.Machines.Notify(context.Background())

	if calls != 2 { // initial + notify
		t.Errorf("calls: got %d, want 2", calls)
	}
	if len(last) != 2 {
		t.Errorf("expected full snapshot of 2 machines, got %d", len(last))
	}
}

func TestFeed_UnsubscribeIsIdempotent(t *testing.T) {
	mem := &memory{}
	hub := live.NewHub(mem.loaders(), zap.NewNop())

	calls := 0
	unsub, err := hub.Beans.Subscribe(context.Background(), func([]models.Bean) { calls++ })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	unsub()
	unsub() // second call must not panic

	hub.Beans.Notify(context.Background())
	if calls != 1 { // just the initial delivery
		t.Errorf("calls after double unsubscribe: got %d, want 1", calls)
	}
	if n := hub.Beans.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount: got %d, want 0", n)
	}
}

func TestFeed_LoadErrorKeepsSubscribers(t *testing.T) {
	fail := false
	feed := live.NewFeed("beans", func(context.Context) ([]models.Bean, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return nil, nil
	}, zap.NewNop())

	calls := 0
	unsub, err := feed.Subscribe(context.Background(), func([]models.Bean) { calls++ })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsub()

	fail = true
	feed.Notify(context.Background()) // dropped, no delivery
	fail = false
	feed.Notify(context.Background())

	if calls != 2 { // initial + second notify
		t.Errorf("calls: got %d, want 2", calls)
	}
}

func TestMirror_AnyCollectionChangeTriggersOnChange(t *testing.T) {
	beanID := primitive.NewObjectID()
	mem := &memory{
		experiments: []models.Experiment{{BeanID: beanID, UserID: "u1"}},
	}
	hub := live.NewHub(mem.loaders(), zap.NewNop())

	renders := 0
	var last live.Snapshot
	m := live.NewMirror(hub, func(s live.Snapshot) {
		renders++
		last = s
	})
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m.Stop()

	if renders != 3 { // one initial delivery per collection
		t.Fatalf("initial renders: got %d, want 3", renders)
	}

	// A change to beans alone must re-render experiments.
	mem.beans = []models.Bean{{ID: beanID, Name: "Yirgacheffe", RoastLevel: "Light"}}
	hub.Beans.Notify(context.Background())

	if renders != 4 {
		t.Errorf("renders after bean notify: got %d, want 4", renders)
	}
	if len(last.Beans) != 1 || len(last.Experiments) != 1 {
		t.Errorf("snapshot: beans=%d experiments=%d", len(last.Beans), len(last.Experiments))
	}
}

func TestMirror_StartTwiceDoesNotDuplicateListeners(t *testing.T) {
	mem := &memory{}
	hub := live.NewHub(mem.loaders(), zap.NewNop())

	renders := 0
	m := live.NewMirror(hub, func(live.Snapshot) { renders++ })
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	defer m.Stop()

	renders = 0
	hub.Experiments.Notify(context.Background())
	if renders != 1 {
		t.Errorf("renders: got %d, want 1 (duplicate listener detected)", renders)
	}
}

func TestMirror_StopIsIdempotentAndSafeBeforeStart(t *testing.T) {
	mem := &memory{}
	hub := live.NewHub(mem.loaders(), zap.NewNop())

	m := live.NewMirror(hub, func(live.Snapshot) {})
	m.Stop() // never started

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Stop()
	m.Stop()

	if n := hub.Beans.SubscriberCount() + hub.Machines.SubscriberCount() + hub.Experiments.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers after Stop, got %d", n)
	}
}
