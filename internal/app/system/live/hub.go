// internal/app/system/live/hub.go
package live

import (
	"context"

	"github.com/dalemusser/brewlab/internal/domain/models"
	"go.uber.org/zap"
)

// Hub bundles the three collection feeds. Stores hold a *Hub and call
// the matching Notify method after each successful mutation.
type Hub struct {
	Beans       *Feed[models.Bean]
	Machines    *Feed[models.Machine]
	Experiments *Feed[models.Experiment]
}

// Loaders supplies the full-contents loader for each collection.
type Loaders struct {
	Beans       func(ctx context.Context) ([]models.Bean, error)
	Machines    func(ctx context.Context) ([]models.Machine, error)
	Experiments func(ctx context.Context) ([]models.Experiment, error)
}

// NewHub builds the three feeds over the given loaders.
func NewHub(l Loaders, logger *zap.Logger) *Hub {
	return &Hub{
		Beans:       NewFeed("beans", l.Beans, logger),
		Machines:    NewFeed("machines", l.Machines, logger),
		Experiments: NewFeed("experiments", l.Experiments, logger),
	}
}
