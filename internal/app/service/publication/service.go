package publication

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tierhive/billing/pkg/metrics"
)

// Service publishes scheduled content whose release time has passed.
type Service struct {
	store Store
	log   *zap.SugaredLogger
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// PublishDue flips every scheduled item with scheduled_at <= now to
// published. One bad item never blocks the rest; the count of items actually
// published is returned even when some fail.
func (s *Service) PublishDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.DueScheduled(ctx, now)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, item := range due {
		ok, err := s.store.Publish(ctx, item.ID, now)
		if err != nil {
			s.log.Errorw("failed to publish content item", "content_id", item.ID, "creator_id", item.CreatorID, "err", err)
			continue
		}
		if !ok {
			continue
		}
		published++
		metrics.ContentPublished.Inc()
		s.log.Infow("content item published", "content_id", item.ID, "creator_id", item.CreatorID, "scheduled_at", item.ScheduledAt)
	}
	return published, nil
}
