package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"workbee/board-service/internal/boardapi"
)

// fakeAPI serves notice details from a fixed map; absent ids fail.
type fakeAPI struct {
	notices map[string]*boardapi.NoticeItem
}

func (a *fakeAPI) GetNotice(_ context.Context, shopID, noticeID string) (*boardapi.NoticeItem, error) {
	n, ok := a.notices[shopID+":"+noticeID]
	if !ok {
		return nil, errors.New("not found")
	}
	return n, nil
}

func futureNotice() *boardapi.NoticeItem {
	return &boardapi.NoticeItem{ID: "n1", StartsAt: time.Now().Add(48 * time.Hour)}
}

// ── Key parsing ────────────────────────────────────────────────────────────

func TestParseIntentKey(t *testing.T) {
	cases := []struct {
		key                  string
		wantShop, wantNotice string
		wantOK               bool
	}{
		{"applicationId:user-1:s1:n1", "s1", "n1", true},
		{"applicationId:guest:shop-9:notice-3", "shop-9", "notice-3", true},
		{"applicationId:user-1:n1", "", "", false}, // no selection key
		{"recentNotices:user-1", "", "", false},    // foreign key family
		{"applicationId:", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		shop, notice, ok := parseIntentKey(c.key)
		if shop != c.wantShop || notice != c.wantNotice || ok != c.wantOK {
			t.Errorf("parseIntentKey(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.key, shop, notice, ok, c.wantShop, c.wantNotice, c.wantOK)
		}
	}
}

// ── Expiry rule ────────────────────────────────────────────────────────────

func TestExpired(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		notice boardapi.NoticeItem
		want   bool
	}{
		{"open future notice keeps", boardapi.NoticeItem{StartsAt: now.Add(time.Hour)}, false},
		{"closed notice expires", boardapi.NoticeItem{Closed: true, StartsAt: now.Add(time.Hour)}, true},
		{"started notice expires", boardapi.NoticeItem{StartsAt: now.Add(-time.Minute)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := expired(&c.notice, now); got != c.want {
				t.Errorf("expired = %v, want %v", got, c.want)
			}
		})
	}
}

// ── Entry decisions ────────────────────────────────────────────────────────

func TestSweepEntry(t *testing.T) {
	past := &boardapi.NoticeItem{ID: "n2", StartsAt: time.Now().Add(-time.Hour)}
	api := &fakeAPI{notices: map[string]*boardapi.NoticeItem{
		"s1:n1": futureNotice(),
		"s2:n2": past,
	}}
	r := New(nil, api, 6)

	cases := []struct {
		name string
		key  string
		want sweepResult
	}{
		{"open notice retained", "applicationId:user-1:s1:n1", retained},
		{"started notice swept", "applicationId:user-1:s2:n2", swept},
		{"unknown notice skipped", "applicationId:user-1:s9:n9", sweepSkipped},
		{"malformed key skipped", "applicationId:user-1", sweepSkipped},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := r.sweepEntry(context.Background(), c.key); got != c.want {
				t.Errorf("sweepEntry(%q) = %d, want %d", c.key, got, c.want)
			}
		})
	}
}
