// Package recent tracks the notices an identity viewed most recently.
//
// Each identity partition owns an ordered, de-duplicated list of
// "shopId:noticeId" keys, most recent first, capped at six entries, stored
// as JSON text in Redis. A guest (no identity) and each signed-in user
// have disjoint lists; switching identity never merges or migrates them.
// Storage failures degrade silently to "no cached value": they are logged
// but never surfaced.
package recent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/model"
)

// maxEntries caps every recency list; the oldest entry is dropped on
// overflow.
const maxEntries = 6

// Store persists recency lists per partition key. Load distinguishes a
// miss, (nil, nil), from a storage or decode failure, (nil, err); callers
// treat both as an empty list but log the latter.
type Store interface {
	Load(ctx context.Context, key string) ([]string, error)
	Save(ctx context.Context, key string, keys []string) error
}

// API is the slice of the board client the cache resolves details through.
type API interface {
	GetNotice(ctx context.Context, shopID, noticeID string) (*boardapi.NoticeItem, error)
}

// Cache persists per-identity recency lists.
type Cache struct {
	store  Store
	api    API
	logger *slog.Logger
}

// NewCache constructs a Cache.
func NewCache(store Store, api API, logger *slog.Logger) *Cache {
	return &Cache{store: store, api: api, logger: logger}
}

// storageKey returns the partition key for an identity. An empty identity
// maps to the shared guest partition.
func storageKey(identity string) string {
	if identity == "" {
		return "recentNotices:guest"
	}
	return "recentNotices:" + identity
}

// Select records that identity is viewing (shopID, noticeID): the composite
// key moves to the front of the partition's list, de-duplicated and capped,
// and the list is persisted immediately.
func (c *Cache) Select(ctx context.Context, identity, shopID, noticeID string) {
	key := model.SelectionKey(shopID, noticeID)
	keys := c.load(ctx, identity)
	c.save(ctx, identity, pushFront(keys, key, maxEntries))
}

// Merge reloads the stored list and, when an active selection exists,
// pushes it to the front first so the currently viewed item is always
// included even if storage was stale, then persists the capped result.
// Returns the merged key list.
func (c *Cache) Merge(ctx context.Context, identity, activeKey string) []string {
	keys := c.load(ctx, identity)
	if activeKey != "" {
		keys = pushFront(keys, activeKey, maxEntries)
		c.save(ctx, identity, keys)
	} else if len(keys) > maxEntries {
		// Oversized list from stale storage: truncate and write back.
		keys = keys[:maxEntries]
		c.save(ctx, identity, keys)
	}
	return keys
}

// Cards resolves the recency list to display cards. Per-key detail fetches
// run concurrently; an entry whose fetch fails or whose response fails
// shape validation is silently dropped, without cancelling its siblings.
// Order of the surviving entries matches the list.
func (c *Cache) Cards(ctx context.Context, identity, activeKey string) []model.Card {
	keys := c.Merge(ctx, identity, activeKey)
	if len(keys) == 0 {
		return []model.Card{}
	}

	results := make([]*model.Card, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		shopID, noticeID, ok := model.SplitSelectionKey(key)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, shopID, noticeID string) {
			defer wg.Done()
			n, err := c.api.GetNotice(ctx, shopID, noticeID)
			if err != nil {
				c.logger.Warn("recent notice fetch dropped", "shopId", shopID, "noticeId", noticeID, "err", err)
				return
			}
			card := toCard(n, time.Now())
			results[i] = &card
		}(i, shopID, noticeID)
	}
	wg.Wait()

	cards := make([]model.Card, 0, len(keys))
	for _, r := range results {
		if r != nil {
			cards = append(cards, *r)
		}
	}
	return cards
}

// load reads the stored list, logging a storage error but behaving exactly
// as on a miss.
func (c *Cache) load(ctx context.Context, identity string) []string {
	keys, err := c.store.Load(ctx, storageKey(identity))
	if err != nil {
		c.logger.Warn("recency list read failed", "identity", storageKey(identity), "err", err)
		return nil
	}
	return keys
}

// save writes the list back, best-effort.
func (c *Cache) save(ctx context.Context, identity string, keys []string) {
	if err := c.store.Save(ctx, storageKey(identity), keys); err != nil {
		c.logger.Warn("recency list write failed", "identity", storageKey(identity), "err", err)
	}
}

// pushFront moves key to the front of keys, removing any earlier occurrence
// and truncating to max entries.
func pushFront(keys []string, key string, max int) []string {
	out := make([]string, 0, len(keys)+1)
	out = append(out, key)
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func toCard(n *boardapi.NoticeItem, now time.Time) model.Card {
	return model.Card{
		NoticeID:  n.ID,
		ShopID:    n.Shop.Item.ID,
		Name:      n.Shop.Item.Name,
		StartsAt:  n.StartsAt,
		Workhour:  n.Workhour,
		Address1:  n.Shop.Item.Address1,
		HourlyPay: n.HourlyPay,
		ImageURL:  n.Shop.Item.ImageURL,
		IsPast:    n.StartsAt.Before(now),
		IsClosed:  n.Closed,
	}
}
