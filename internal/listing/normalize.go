// Package listing fetches and normalizes pages of job notices.
package listing

import (
	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/model"
)

// countStrategy extracts a total count from a listing response. Strategies
// are pure and tried in order; the first hit wins.
type countStrategy func(resp *boardapi.NoticesResponse, limit int) (int, bool)

// countStrategies is the ordered fallback chain for the servers' several
// historical response shapes: explicit count, legacy totalCount/total, and
// finally totalPage multiplied by the limit.
var countStrategies = []countStrategy{
	func(r *boardapi.NoticesResponse, _ int) (int, bool) {
		if r.Count != nil {
			return *r.Count, true
		}
		return 0, false
	},
	func(r *boardapi.NoticesResponse, _ int) (int, bool) {
		if r.TotalCount != nil {
			return *r.TotalCount, true
		}
		return 0, false
	},
	func(r *boardapi.NoticesResponse, _ int) (int, bool) {
		if r.Total != nil {
			return *r.Total, true
		}
		return 0, false
	},
	func(r *boardapi.NoticesResponse, limit int) (int, bool) {
		if r.TotalPage != nil {
			return *r.TotalPage * limit, true
		}
		return 0, false
	},
}

// normalizePage builds the uniform pagination descriptor from a raw
// response. Offset and limit prefer response-echoed values and fall back to
// the locally requested ones; count defaults to 0 when no strategy matches.
func normalizePage(resp *boardapi.NoticesResponse, requestedOffset, requestedLimit int) model.Page {
	p := model.Page{
		Links:  resp.Links,
		Offset: requestedOffset,
		Limit:  requestedLimit,
	}
	if resp.Offset != nil {
		p.Offset = *resp.Offset
	}
	if resp.Limit != nil && *resp.Limit > 0 {
		p.Limit = *resp.Limit
	}

	for _, strat := range countStrategies {
		if n, ok := strat(resp, p.Limit); ok {
			p.Count = n
			break
		}
	}
	return p
}
