package listing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/model"
	"workbee/board-service/internal/query"
)

// Controller fetches one page of notices per request and normalizes the
// result. It keeps a monotonic request sequence per logical query (one per
// client session) so a slow earlier response of the same client can be
// recognized as stale and discarded instead of overwriting fresher view
// state. Queries of unrelated clients never supersede each other.
type Controller struct {
	api    *boardapi.Client
	logger *slog.Logger

	mu   sync.Mutex
	seqs map[string]uint64 // latest issued sequence per query key
}

// NewController constructs a Controller.
func NewController(api *boardapi.Client, logger *slog.Logger) *Controller {
	return &Controller{api: api, logger: logger, seqs: make(map[string]uint64)}
}

// begin issues the next sequence number for a query key.
func (c *Controller) begin(queryKey string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[queryKey]++
	return c.seqs[queryKey]
}

// latest returns the most recently issued sequence for a query key.
func (c *Controller) latest(queryKey string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seqs[queryKey]
}

// Result is one normalized listing fetch.
type Result struct {
	Cards []model.Card `json:"items"`
	Page  model.Page   `json:"page"`
	// CorrectedPage is non-zero when the requested page exceeds the total
	// page count: the host should navigate to this last valid page.
	CorrectedPage int `json:"correctedPage,omitempty"`
	// Stale marks a response that lost the race against a newer fetch.
	Stale bool `json:"-"`
}

// Fetch runs one listing request for the logical query identified by
// queryKey. Any network or parse failure yields an
// empty card list and a zeroed pagination descriptor alongside the error;
// there is no automatic retry.
func (c *Controller) Fetch(ctx context.Context, queryKey string, req query.ListRequest) (Result, error) {
	seq := c.begin(queryKey)
	now := time.Now()
	requestedOffset := (req.Page - 1) * req.Limit
	if requestedOffset < 0 {
		requestedOffset = 0
	}

	resp, err := c.api.ListNotices(ctx, req.Encode(now))
	if err != nil {
		c.logger.Error("listing fetch failed", "page", req.Page, "err", err)
		return Result{Cards: []model.Card{}}, err
	}

	res := Result{
		Cards: mapCards(resp.Items, time.Now()),
		Page:  normalizePage(resp, requestedOffset, req.Limit),
	}
	applyClientSort(res.Cards, req.Sort)

	if total := res.Page.TotalPages(); req.Page > total && res.Page.Count > 0 {
		res.CorrectedPage = total
	}

	// A newer fetch of the same logical query was issued while this one
	// was in flight.
	if c.latest(queryKey) != seq {
		res.Stale = true
	}
	return res, nil
}

// mapCards projects raw notices onto the display view-model. IsPast is a
// snapshot against wall-clock time at fetch completion.
func mapCards(items []boardapi.NoticeEnvelope, now time.Time) []model.Card {
	cards := make([]model.Card, 0, len(items))
	for _, env := range items {
		n := env.Item
		cards = append(cards, model.Card{
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
		})
	}
	return cards
}
