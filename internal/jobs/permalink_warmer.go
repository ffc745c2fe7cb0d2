package jobs

import (
	"context"

	"github.com/seoworks/indexable/internal/repository"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
)

const warmerBatchSize = 100

// PermalinkWarmer resolves permalinks for indexables that were stored without
// one, so frontend requests do not pay the resolution cost.
type PermalinkWarmer struct {
	store store.Store
	repo  *repository.Repository
	cron  string
}

func NewPermalinkWarmer(interval string, store store.Store, repo *repository.Repository) *PermalinkWarmer {
	return &PermalinkWarmer{
		store: store,
		repo:  repo,
		cron:  interval,
	}
}

func (w *PermalinkWarmer) Name() string {
	return "permalink_warmer"
}

func (w *PermalinkWarmer) Schedule() string {
	return w.cron
}

func (w *PermalinkWarmer) Run() {
	ctx := context.Background()

	inds, err := w.store.ListIndexablesMissingPermalink(ctx, warmerBatchSize)
	if err != nil {
		logrus.Errorf("permalink warmer: listing indexables failed: %v", err)
		return
	}

	warmed := 0
	for _, ind := range inds {
		ensured, err := w.repo.EnsurePermalink(ctx, ind)
		if err != nil {
			logrus.Errorf("permalink warmer: ensuring permalink for indexable %d failed: %v", ind.ID, err)
			continue
		}
		if ensured.HasPermalink() {
			warmed++
		}
	}

	if len(inds) > 0 {
		logrus.Infof("permalink warmer: resolved %d of %d permalinks", warmed, len(inds))
	}
}
