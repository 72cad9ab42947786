package server_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/filter"
	"workbee/board-service/internal/listing"
	"workbee/board-service/internal/server"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// filterState mirrors the filter view payload.
type filterState struct {
	Locations []string `json:"locations"`
	StartDate string   `json:"startDate"`
	MinPay    string   `json:"minPay"`
}

func filterOnlyMux() *http.ServeMux {
	h := server.NewHandler(filter.NewSessions(), nil, nil, nil, nil, discardLogger(), 6)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func postFilter(t *testing.T, mux *http.ServeMux, session, action, value string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"value":` + strconvQuote(value) + `}`)
	r := httptest.NewRequest(http.MethodPost, "/filters/"+action, body)
	r.Header.Set("x-session-id", session)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func getFilter(t *testing.T, mux *http.ServeMux, session, view string) filterState {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/filters/"+view, nil)
	r.Header.Set("x-session-id", session)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /filters/%s = %d", view, w.Code)
	}
	var f filterState
	if err := json.Unmarshal(w.Body.Bytes(), &f); err != nil {
		t.Fatalf("decode filter view: %v", err)
	}
	return f
}

// ── Filter action routes ───────────────────────────────────────────────────

func TestFilterActions_EditApplyDiscard(t *testing.T) {
	mux := filterOnlyMux()

	postFilter(t, mux, "s1", "toggle-location", "서울시 마포구")
	postFilter(t, mux, "s1", "min-pay", "1a2b3")
	postFilter(t, mux, "s1", "apply", "")

	applied := getFilter(t, mux, "s1", "applied")
	if len(applied.Locations) != 1 || applied.MinPay != "123" {
		t.Errorf("applied = %+v", applied)
	}

	// Unsaved edit, then discard.
	postFilter(t, mux, "s1", "toggle-location", "서울시 종로구")
	postFilter(t, mux, "s1", "discard", "")
	if draft := getFilter(t, mux, "s1", "draft"); len(draft.Locations) != 1 {
		t.Errorf("draft after discard = %+v, want applied state", draft)
	}
}

func TestFilterActions_StartDateMasked(t *testing.T) {
	mux := filterOnlyMux()

	postFilter(t, mux, "s1", "start-date", "20251227")
	if draft := getFilter(t, mux, "s1", "draft"); draft.StartDate != "2025-12-27" {
		t.Errorf("startDate = %q, want 2025-12-27", draft.StartDate)
	}

	postFilter(t, mux, "s1", "start-date", "20251301")
	if draft := getFilter(t, mux, "s1", "draft"); draft.StartDate != "" {
		t.Errorf("invalid month stored %q, want empty", draft.StartDate)
	}
}

func TestFilterActions_SessionsAreIsolated(t *testing.T) {
	mux := filterOnlyMux()

	postFilter(t, mux, "s1", "toggle-location", "서울시 마포구")
	if draft := getFilter(t, mux, "s2", "draft"); len(draft.Locations) != 0 {
		t.Errorf("session s2 draft = %+v, want empty", draft)
	}
}

func TestFilterActions_UnknownAction(t *testing.T) {
	mux := filterOnlyMux()
	if w := postFilter(t, mux, "s1", "bogus", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown action status = %d, want 404", w.Code)
	}
}

// ── Listing route ──────────────────────────────────────────────────────────

func TestListNotices_AppliedFilterReachesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "서울시 마포구" {
			t.Errorf("address = %q, want 서울시 마포구", got)
		}
		if got := r.URL.Query().Get("hourlyPayGte"); got != "12000" {
			t.Errorf("hourlyPayGte = %q, want 12000", got)
		}
		if _, present := r.URL.Query()["startsAtGte"]; present {
			t.Error("startsAtGte must be omitted without a start date")
		}
		w.Write([]byte(`{"offset":0,"limit":6,"count":0,"items":[]}`))
	}))
	defer upstream.Close()

	api := boardapi.NewClient(upstream.URL)
	h := server.NewHandler(filter.NewSessions(), listing.NewController(api, discardLogger()),
		nil, nil, api, discardLogger(), 6)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	postFilter(t, mux, "s1", "toggle-location", "서울시 마포구")
	postFilter(t, mux, "s1", "min-pay", "12000")
	postFilter(t, mux, "s1", "apply", "")

	r := httptest.NewRequest(http.MethodGet, "/notices", nil)
	r.Header.Set("x-session-id", "s1")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /notices = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Query != "" {
		t.Errorf("canonical query = %q, want empty at defaults", resp.Query)
	}
}

func TestListNotices_BadPage(t *testing.T) {
	mux := filterOnlyMux()
	r := httptest.NewRequest(http.MethodGet, "/notices?page=0", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("page=0 status = %d, want 400", w.Code)
	}
}
