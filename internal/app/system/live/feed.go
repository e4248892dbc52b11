// internal/app/system/live/feed.go

// Package live keeps in-memory snapshots of the logging collections
// consistent with MongoDB and pushes the complete current contents to
// subscribers on every change.
//
// The contract is deliberately snapshot-based, not diff-based: stores
// call Notify after a successful mutation, the feed reloads the full
// collection, and every subscriber receives the whole thing. Subscribers
// never have to merge.
package live

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Unsubscribe tears down one subscription. It is idempotent and safe to
// call even if the subscription was never fully established.
type Unsubscribe func()

// Feed is a single collection's push subscription point.
type Feed[T any] struct {
	name string
	load func(ctx context.Context) ([]T, error)
	log  *zap.Logger

	mu   sync.Mutex
	subs map[string]func([]T)
}

// NewFeed builds a feed over a loader that returns the collection's full
// current contents.
func NewFeed[T any](name string, load func(ctx context.Context) ([]T, error), logger *zap.Logger) *Feed[T] {
	return &Feed[T]{
		name: name,
		load: load,
		log:  logger,
		subs: make(map[string]func([]T)),
	}
}

// Subscribe registers fn and immediately delivers the current contents,
// mirroring how a remote snapshot listener fires once on attach. The
// returned Unsubscribe may be called any number of times.
func (f *Feed[T]) Subscribe(ctx context.Context, fn func([]T)) (Unsubscribe, error) {
	items, err := f.load(ctx)
	if err != nil {
		return func() {}, err
	}

	id := uuid.NewString()
	f.mu.Lock()
	f.subs[id] = fn
	f.mu.Unlock()

	fn(items)

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}, nil
}

// Notify reloads the collection and fans the full snapshot out to every
// subscriber. A failed reload is logged and dropped; subscribers simply
// keep their previous snapshot.
func (f *Feed[T]) Notify(ctx context.Context) {
	items, err := f.load(ctx)
	if err != nil {
		f.log.Warn("live feed reload failed",
			zap.String("collection", f.name),
			zap.Error(err))
		return
	}

	f.mu.Lock()
	fns := make([]func([]T), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(items)
	}
}

// SubscriberCount reports the number of active subscriptions.
func (f *Feed[T]) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
