// Package pagination decodes server-provided navigation links.
//
// The navigator never computes page numbers or totals for link-based
// navigation: the server's link set is authoritative for which pages exist.
// This package only converts a clicked link's offset back into a 1-based
// page number for URL state.
package pagination

import (
	"net/url"
	"strconv"
)

// PageFromLink parses the "offset" query parameter out of a navigation
// link's URI and derives page = floor(offset/limit) + 1. Non-conforming
// offsets (not a multiple of limit) are tolerated by the floor. ok is false
// for malformed URIs, missing or negative offsets, or limit <= 0; callers
// ignore the click in that case.
func PageFromLink(rawURI string, limit int) (page int, ok bool) {
	if limit <= 0 {
		return 0, false
	}

	u, err := url.Parse(rawURI)
	if err != nil {
		return 0, false
	}

	raw := u.Query().Get("offset")
	if raw == "" {
		return 0, false
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, false
	}

	return offset/limit + 1, true
}
