package pagination_test

import (
	"testing"

	"workbee/board-service/internal/pagination"
)

func TestPageFromLink(t *testing.T) {
	cases := []struct {
		name  string
		uri   string
		limit int
		page  int
		ok    bool
	}{
		{"first page", "/notices?offset=0&limit=6", 6, 1, true},
		{"third page", "/notices?offset=12&limit=6", 6, 3, true},
		{"absolute uri", "https://api.example.com/notices?offset=18&limit=6", 6, 4, true},
		{"non-conforming offset floors", "/notices?offset=13", 6, 3, true},
		{"missing offset", "/notices?limit=6", 6, 0, false},
		{"negative offset", "/notices?offset=-6", 6, 0, false},
		{"non-numeric offset", "/notices?offset=abc", 6, 0, false},
		{"malformed uri", "://bad\x00uri", 6, 0, false},
		{"zero limit", "/notices?offset=12", 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, ok := pagination.PageFromLink(c.uri, c.limit)
			if ok != c.ok || page != c.page {
				t.Errorf("PageFromLink(%q, %d) = (%d, %v), want (%d, %v)",
					c.uri, c.limit, page, ok, c.page, c.ok)
			}
		})
	}
}
