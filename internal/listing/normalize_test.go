package listing

import (
	"testing"

	"workbee/board-service/internal/boardapi"
)

func intp(n int) *int { return &n }

// ── Count extraction strategy chain ────────────────────────────────────────

func TestNormalizePage_CountStrategies(t *testing.T) {
	cases := []struct {
		name string
		resp boardapi.NoticesResponse
		want int
	}{
		{"explicit count wins", boardapi.NoticesResponse{Count: intp(42), TotalCount: intp(7)}, 42},
		{"legacy totalCount", boardapi.NoticesResponse{TotalCount: intp(17)}, 17},
		{"legacy total", boardapi.NoticesResponse{Total: intp(9)}, 9},
		{"totalPage times limit", boardapi.NoticesResponse{TotalPage: intp(5)}, 30},
		{"no field defaults to zero", boardapi.NoticesResponse{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := normalizePage(&c.resp, 0, 6)
			if p.Count != c.want {
				t.Errorf("count = %d, want %d", p.Count, c.want)
			}
		})
	}
}

func TestNormalizePage_TotalPageRoundTrips(t *testing.T) {
	// A response lacking count but carrying totalPage=5 with limit 6 must
	// back-derive a count that yields totalPage=5 again.
	p := normalizePage(&boardapi.NoticesResponse{TotalPage: intp(5)}, 0, 6)
	if p.Count != 30 {
		t.Errorf("count = %d, want 30", p.Count)
	}
	if got := p.TotalPages(); got != 5 {
		t.Errorf("TotalPages() = %d, want 5", got)
	}
}

func TestNormalizePage_EchoedValuesPreferred(t *testing.T) {
	resp := boardapi.NoticesResponse{Offset: intp(12), Limit: intp(4)}
	p := normalizePage(&resp, 6, 6)
	if p.Offset != 12 || p.Limit != 4 {
		t.Errorf("page = %+v, want echoed offset=12 limit=4", p)
	}

	p = normalizePage(&boardapi.NoticesResponse{}, 6, 6)
	if p.Offset != 6 || p.Limit != 6 {
		t.Errorf("page = %+v, want requested fallback offset=6 limit=6", p)
	}
}
