// Package reconcile wires up the cron job that periodically checks cached
// application intents against server truth.
//
// The intent cache is a local optimistic record: cleared storage or a
// second device can desync it. The sweeper walks every applicationId:* key
// and drops entries whose notice can no longer hold a pending application
// (the notice is closed or its start time has passed). Disabled unless an
// interval is configured.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/model"
)

// noticeAPI is the slice of the board client the sweeper needs.
type noticeAPI interface {
	GetNotice(ctx context.Context, shopID, noticeID string) (*boardapi.NoticeItem, error)
}

// Reconciler wraps robfig/cron and manages the sweep loop.
type Reconciler struct {
	cron *cron.Cron
	rdb  *redis.Client
	api  noticeAPI
	spec string // cron spec, e.g. "@every 6h"
}

// New creates a Reconciler that fires every intervalHours hours.
func New(rdb *redis.Client, api noticeAPI, intervalHours int) *Reconciler {
	return &Reconciler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		rdb:  rdb,
		api:  api,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one sweep
// immediately so stale entries do not linger until the first tick.
func (r *Reconciler) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	log.Printf("[reconcile] Cron started — spec: %s", r.spec)

	go r.runSweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (r *Reconciler) Stop() {
	r.cron.Stop()
	log.Println("[reconcile] Cron stopped")
}

// runSweep scans all intent keys, clearing the dead ones. Per-entry
// failures are logged and skipped; the sweep itself never aborts early.
func (r *Reconciler) runSweep(ctx context.Context) {
	log.Println("[reconcile] Sweep cycle started")

	var cleared, kept, skipped int
	iter := r.rdb.Scan(ctx, 0, "applicationId:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		switch r.sweepEntry(ctx, key) {
		case swept:
			if err := r.rdb.Del(ctx, key).Err(); err != nil {
				log.Printf("[reconcile] Delete failed for %s: %v", key, err)
				skipped++
				continue
			}
			cleared++
		case retained:
			kept++
		default:
			skipped++
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[reconcile] Key scan error: %v", err)
		return
	}

	log.Printf("[reconcile] Sweep complete — cleared=%d kept=%d skipped=%d", cleared, kept, skipped)
}

type sweepResult int

const (
	swept sweepResult = iota
	retained
	sweepSkipped
)

// sweepEntry decides the fate of one applicationId:<userId>:<selectionKey>
// entry; the actual delete happens in runSweep.
func (r *Reconciler) sweepEntry(ctx context.Context, key string) sweepResult {
	shopID, noticeID, ok := parseIntentKey(key)
	if !ok {
		return sweepSkipped
	}

	notice, err := r.api.GetNotice(ctx, shopID, noticeID)
	if err != nil {
		log.Printf("[reconcile] Notice fetch failed for %s — skipping: %v", key, err)
		return sweepSkipped
	}

	if expired(notice, time.Now()) {
		return swept
	}
	return retained
}

// parseIntentKey extracts the shop and notice ids out of an intent key of
// the form applicationId:<userId>:<shopId>:<noticeId>.
func parseIntentKey(key string) (shopID, noticeID string, ok bool) {
	rest, found := strings.CutPrefix(key, "applicationId:")
	if !found {
		return "", "", false
	}
	_, rest, found = strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	return model.SplitSelectionKey(rest)
}

// expired reports whether a notice can no longer hold a pending
// application.
func expired(n *boardapi.NoticeItem, now time.Time) bool {
	return n.Closed || n.StartsAt.Before(now)
}
