// Package query builds listing-endpoint query strings from filter, sort,
// keyword and pagination state. Builders are pure: same inputs, same output,
// and empty fields are omitted entirely (no empty-string parameters).
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"workbee/board-service/internal/filter"
	"workbee/board-service/internal/model"
)

// Sort identifies a listing order. The first four are native to the server;
// SortWorkhour and SortName exist only client-side and are substituted with
// the server's "time" order on the wire, with the true order applied on the
// fetched page afterward. Client-only sorts are therefore correct within a
// single page only — a known, accepted limitation.
type Sort string

const (
	SortTime     Sort = "time"
	SortPay      Sort = "pay"
	SortHour     Sort = "hour"
	SortShop     Sort = "shop"
	SortWorkhour Sort = "workhour"
	SortName     Sort = "name"
)

// ClientOnly reports whether the order must be applied client-side.
func (s Sort) ClientOnly() bool {
	return s == SortWorkhour || s == SortName
}

// serverToken returns the sort value sent to the listing endpoint.
func (s Sort) serverToken() string {
	if s.ClientOnly() {
		return string(SortTime)
	}
	return string(s)
}

// ParseSort validates a raw sort token, defaulting to SortTime.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortTime, SortPay, SortHour, SortShop, SortWorkhour, SortName:
		return Sort(raw)
	}
	return SortTime
}

// FilterParams translates an applied filter into listing query parameters.
// Each selected location becomes a repeated "address" parameter (the server
// expects multi-value, not comma-joined). A start date becomes the
// "startsAtGte" lower-bound instant per filter.StartLowerBound; minimum pay
// becomes integer "hourlyPayGte".
func FilterParams(f model.Filter, now time.Time) url.Values {
	v := url.Values{}
	for _, loc := range f.Locations {
		if loc != "" {
			v.Add("address", loc)
		}
	}
	if lb, ok := filter.StartLowerBound(f.StartDate, now); ok {
		v.Set("startsAtGte", lb.UTC().Format(time.RFC3339))
	}
	if f.MinPay != "" {
		if pay, err := strconv.Atoi(f.MinPay); err == nil {
			v.Set("hourlyPayGte", strconv.Itoa(pay))
		}
	}
	return v
}

// ListRequest is one listing fetch: page is 1-based, limit is fixed by the
// host view, keyword is trimmed and omitted when empty.
type ListRequest struct {
	Page    int
	Limit   int
	Sort    Sort
	Keyword string
	Filter  model.Filter
}

// Values composes the full listing query: fixed limit, offset derived from
// the page number, the server sort token, the optional keyword and the
// filter parameters merged in.
func (r ListRequest) Values(now time.Time) url.Values {
	page := r.Page
	if page < 1 {
		page = 1
	}

	v := FilterParams(r.Filter, now)
	v.Set("limit", strconv.Itoa(r.Limit))
	v.Set("offset", strconv.Itoa((page-1)*r.Limit))
	v.Set("sort", r.Sort.serverToken())
	if kw := strings.TrimSpace(r.Keyword); kw != "" {
		v.Set("keyword", kw)
	}
	return v
}

// Encode returns the query fragment for the listing endpoint.
func (r ListRequest) Encode(now time.Time) string {
	return r.Values(now).Encode()
}
