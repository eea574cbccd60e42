package publication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

type memStore struct {
	items   map[string]*models.ContentItem
	failFor map[string]bool
}

func newMemStore() *memStore {
	return &memStore{items: map[string]*models.ContentItem{}, failFor: map[string]bool{}}
}

func (m *memStore) DueScheduled(_ context.Context, now time.Time) ([]*models.ContentItem, error) {
	var due []*models.ContentItem
	for _, it := range m.items {
		if it.Status == types.ContentStatusScheduled && it.ScheduledAt != nil && !it.ScheduledAt.After(now) {
			due = append(due, it)
		}
	}
	return due, nil
}

func (m *memStore) Publish(_ context.Context, itemID string, publishedAt time.Time) (bool, error) {
	if m.failFor[itemID] {
		return false, errors.New("write failed")
	}
	it, ok := m.items[itemID]
	if !ok || it.Status != types.ContentStatusScheduled {
		return false, nil
	}
	it.Status = types.ContentStatusPublished
	it.PublishedAt = &publishedAt
	return true, nil
}

func scheduledItem(id string, at time.Time) *models.ContentItem {
	return &models.ContentItem{
		ID:          id,
		CreatorID:   "creator-1",
		Title:       "post " + id,
		Status:      types.ContentStatusScheduled,
		ScheduledAt: &at,
	}
}

func TestPublishDue_FlipsDueItemsOnly(t *testing.T) {
	now := time.Unix(1735689600, 0).UTC()
	store := newMemStore()
	store.items["due"] = scheduledItem("due", now.Add(-time.Hour))
	store.items["exact"] = scheduledItem("exact", now)
	store.items["future"] = scheduledItem("future", now.Add(time.Hour))
	store.items["draft"] = &models.ContentItem{ID: "draft", Status: types.ContentStatusDraft}

	svc := NewService(store, zap.NewNop().Sugar())
	n, err := svc.PublishDue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Equal(t, types.ContentStatusPublished, store.items["due"].Status)
	require.NotNil(t, store.items["due"].PublishedAt)
	require.Equal(t, now, *store.items["due"].PublishedAt)
	require.Equal(t, types.ContentStatusPublished, store.items["exact"].Status)
	require.Equal(t, types.ContentStatusScheduled, store.items["future"].Status)
	require.Equal(t, types.ContentStatusDraft, store.items["draft"].Status)
}

func TestPublishDue_OneFailureDoesNotBlockRest(t *testing.T) {
	now := time.Unix(1735689600, 0).UTC()
	store := newMemStore()
	store.items["a"] = scheduledItem("a", now.Add(-time.Hour))
	store.items["b"] = scheduledItem("b", now.Add(-time.Hour))
	store.failFor["a"] = true

	svc := NewService(store, zap.NewNop().Sugar())
	n, err := svc.PublishDue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.Equal(t, types.ContentStatusScheduled, store.items["a"].Status)
	require.Equal(t, types.ContentStatusPublished, store.items["b"].Status)
}

func TestPublishDue_SecondRunIsIdempotent(t *testing.T) {
	now := time.Unix(1735689600, 0).UTC()
	store := newMemStore()
	store.items["a"] = scheduledItem("a", now.Add(-time.Hour))

	svc := NewService(store, zap.NewNop().Sugar())
	n, err := svc.PublishDue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = svc.PublishDue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
