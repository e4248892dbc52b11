// internal/app/system/live/mirror.go
package live

import (
	"context"
	"sync"

	"github.com/dalemusser/brewlab/internal/domain/models"
)

// Snapshot is a consistent-at-read copy of the three collection
// snapshots. The three may be mutually stale (a bean referenced by an
// experiment can be momentarily missing); renderers must tolerate that.
type Snapshot struct {
	Beans       []models.Bean
	Machines    []models.Machine
	Experiments []models.Experiment
}

// Mirror maintains the three in-memory snapshots for one subscriber
// session (an SSE connection) and invokes onChange whenever any of them
// is replaced. The three subscriptions are independent; each callback
// only ever replaces its own collection's snapshot.
type Mirror struct {
	hub      *Hub
	onChange func(Snapshot)

	mu          sync.Mutex
	started     bool
	beans       []models.Bean
	machines    []models.Machine
	experiments []models.Experiment
	unsubs      []Unsubscribe
}

// NewMirror builds a mirror over hub. onChange fires once per collection
// notification, including the three initial deliveries on Start.
func NewMirror(hub *Hub, onChange func(Snapshot)) *Mirror {
	return &Mirror{hub: hub, onChange: onChange}
}

// Start establishes the three subscriptions. Calling Start on a started
// mirror is a no-op; duplicate listeners would double-fire renders.
// On error, any subscriptions already made are torn down.
func (m *Mirror) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	unsubBeans, err := m.hub.Beans.Subscribe(ctx, func(items []models.Bean) {
		m.mu.Lock()
		m.beans = items
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.onChange(snap)
	})
	if err != nil {
		m.Stop()
		return err
	}
	m.addUnsub(unsubBeans)

	unsubMachines, err := m.hub.Machines.Subscribe(ctx, func(items []models.Machine) {
		m.mu.Lock()
		m.machines = items
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.onChange(snap)
	})
	if err != nil {
		m.Stop()
		return err
	}
	m.addUnsub(unsubMachines)

	unsubExperiments, err := m.hub.Experiments.Subscribe(ctx, func(items []models.Experiment) {
		m.mu.Lock()
		m.experiments = items
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.onChange(snap)
	})
	if err != nil {
		m.Stop()
		return err
	}
	m.addUnsub(unsubExperiments)

	return nil
}

// Stop tears down whichever subscriptions exist. Idempotent, and safe to
// call on a mirror that never finished starting.
func (m *Mirror) Stop() {
	m.mu.Lock()
	unsubs := m.unsubs
	m.unsubs = nil
	m.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

// Current returns the latest snapshot.
func (m *Mirror) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Mirror) addUnsub(u Unsubscribe) {
	m.mu.Lock()
	m.unsubs = append(m.unsubs, u)
	m.mu.Unlock()
}

func (m *Mirror) snapshotLocked() Snapshot {
	return Snapshot{
		Beans:       m.beans,
		Machines:    m.machines,
		Experiments: m.experiments,
	}
}
