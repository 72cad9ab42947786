// Package model defines shared data structures for the board service.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Filter is the notice search filter. Two instances exist at any time in a
// filter session: a draft being edited and the applied filter in effect.
type Filter struct {
	Locations []string // selected region labels, e.g. "서울시 마포구"
	StartDate string   // ISO date "2006-01-02", empty when unset
	MinPay    string   // numeric text, empty when unset
}

// Clone returns a deep copy. Filters are copied on every draft/applied
// handoff so edits never alias the value in effect.
func (f Filter) Clone() Filter {
	c := f
	c.Locations = append([]string(nil), f.Locations...)
	return c
}

// IsEmpty reports whether no field is set.
func (f Filter) IsEmpty() bool {
	return len(f.Locations) == 0 && f.StartDate == "" && f.MinPay == ""
}

// NavigationLink is a server-provided pagination action. The URI is opaque
// to us except for its offset query parameter; the server's link set is
// authoritative for which pages exist.
type NavigationLink struct {
	Rel    string `json:"rel"`
	Method string `json:"method"`
	Href   string `json:"href"`
}

// Page describes one fetched page of a listing.
// Offset is a multiple of Limit in well-formed responses, but consumers
// must tolerate non-conforming offsets by flooring offset/limit.
type Page struct {
	Links  []NavigationLink `json:"links"`
	Offset int              `json:"offset"`
	Limit  int              `json:"limit"`
	Count  int              `json:"count"`
}

// TotalPages derives the page count, minimum 1.
func (p Page) TotalPages() int {
	if p.Limit <= 0 {
		return 1
	}
	n := (p.Count + p.Limit - 1) / p.Limit
	if n < 1 {
		n = 1
	}
	return n
}

// Card is the read-only notice projection used for display.
// IsPast is a snapshot computed against wall-clock time at fetch completion,
// not live-updated.
type Card struct {
	NoticeID  string    `json:"noticeId"`
	ShopID    string    `json:"shopId"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"startsAt"`
	Workhour  int       `json:"workhour"`
	Address1  string    `json:"address1"`
	HourlyPay int       `json:"hourlyPay"`
	ImageURL  string    `json:"imageUrl"`
	IsPast    bool      `json:"isPast"`
	IsClosed  bool      `json:"isClosed"`
}

// SelectionKey composes the "shopId:noticeId" key used by the recency list
// and the application-intent cache.
func SelectionKey(shopID, noticeID string) string {
	return fmt.Sprintf("%s:%s", shopID, noticeID)
}

// SplitSelectionKey is the inverse of SelectionKey. ok is false when the
// key does not contain both parts.
func SplitSelectionKey(key string) (shopID, noticeID string, ok bool) {
	shopID, noticeID, ok = strings.Cut(key, ":")
	if !ok || shopID == "" || noticeID == "" {
		return "", "", false
	}
	return shopID, noticeID, true
}
