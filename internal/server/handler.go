// Package server implements the HTTP surface of the board service.
//
// Identity comes from the bearer token's userId claim (or the x-user-id
// gateway header); callers without either share the guest partition.
//
// Routes:
//
//	GET  /health
//	GET  /notices                                     → filtered, sorted, paginated listing
//	POST /filters/{action}                            → filter draft actions (see dispatch)
//	GET  /notices/recent                              → recently viewed card rail
//	GET  /shops/{shopId}/notices/{noticeId}           → notice detail (records recency)
//	POST /shops/{shopId}/notices/{noticeId}/applications        → apply
//	POST /shops/{shopId}/notices/{noticeId}/applications/cancel → cancel
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/filter"
	"workbee/board-service/internal/intent"
	"workbee/board-service/internal/listing"
	"workbee/board-service/internal/model"
	"workbee/board-service/internal/query"
	"workbee/board-service/internal/recent"
)

const version = "1.0.0"

// Handler holds shared dependencies.
type Handler struct {
	sessions   *filter.Sessions
	controller *listing.Controller
	recent     *recent.Cache
	intents    *intent.Service
	api        *boardapi.Client
	logger     *slog.Logger
	pageLimit  int
}

// NewHandler returns a configured Handler.
func NewHandler(
	sessions *filter.Sessions,
	controller *listing.Controller,
	recentCache *recent.Cache,
	intents *intent.Service,
	api *boardapi.Client,
	logger *slog.Logger,
	pageLimit int,
) *Handler {
	return &Handler{
		sessions:   sessions,
		controller: controller,
		recent:     recentCache,
		intents:    intents,
		api:        api,
		logger:     logger,
		pageLimit:  pageLimit,
	}
}

// RegisterRoutes mounts all board-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/notices", h.listNotices)
	mux.HandleFunc("/notices/recent", h.recentNotices)
	mux.HandleFunc("/filters/", h.handleFilterAction)
	mux.HandleFunc("/shops/", h.handleShopPath)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{
		"status":  "ok",
		"service": "board-service",
		"version": version,
	})
}

// ─── Listing ─────────────────────────────────────────────────────────────────

// listNotices handles GET /notices?page=&keyword=&sort= with the session's
// applied filter merged in.
func (h *Handler) listNotices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			jsonError(w, fmt.Sprintf("invalid page %q", raw), http.StatusBadRequest)
			return
		}
		page = v
	}
	keyword := r.URL.Query().Get("keyword")
	sort := query.ParseSort(r.URL.Query().Get("sort"))

	session := sessionKey(r)
	store := h.sessions.Get(session)
	req := query.ListRequest{
		Page:    page,
		Limit:   h.pageLimit,
		Sort:    sort,
		Keyword: keyword,
		Filter:  store.Applied(),
	}

	res, err := h.controller.Fetch(r.Context(), session, req)
	if err != nil {
		// No retry: the empty result plus an error banner is the whole story.
		jsonError(w, "failed to load notices", http.StatusBadGateway)
		return
	}
	if res.Stale {
		jsonError(w, "superseded by a newer request", http.StatusConflict)
		return
	}

	jsonOK(w, listResponse{
		Result: res,
		Query:  canonicalQuery(page, keyword, sort),
	})
}

// listResponse adds the canonical host-page query state to a listing result.
type listResponse struct {
	listing.Result
	// Query is what the host page should write to its URL: default values
	// (page=1, empty keyword, time sort) are omitted to keep URLs canonical.
	Query string `json:"query"`
}

// canonicalQuery renders URL state with defaults omitted entirely.
func canonicalQuery(page int, keyword string, sort query.Sort) string {
	v := url.Values{}
	if kw := strings.TrimSpace(keyword); kw != "" {
		v.Set("keyword", kw)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if sort != query.SortTime {
		v.Set("sort", string(sort))
	}
	return v.Encode()
}

// ─── Filter actions ──────────────────────────────────────────────────────────

// handleFilterAction handles POST /filters/{action}.
//
// Actions: open (sync draft from applied), toggle-location, remove-location,
// start-date, min-pay, reset, apply, discard. GET /filters/draft and
// GET /filters/applied read current state.
func (h *Handler) handleFilterAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	action := parts[1]
	store := h.sessions.Get(sessionKey(r))

	if r.Method == http.MethodGet {
		switch action {
		case "draft":
			jsonOK(w, filterJSON(store.Draft()))
		case "applied":
			jsonOK(w, filterJSON(store.Applied()))
		default:
			jsonError(w, fmt.Sprintf("unknown filter view %q", action), http.StatusNotFound)
		}
		return
	}

	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	// Actions without a payload tolerate an empty body.
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch action {
	case "open":
		store.SyncDraftFromApplied()
	case "toggle-location":
		if body.Value == "" {
			jsonError(w, "body must contain value", http.StatusBadRequest)
			return
		}
		store.ToggleLocation(body.Value)
	case "remove-location":
		if body.Value == "" {
			jsonError(w, "body must contain value", http.StatusBadRequest)
			return
		}
		store.RemoveLocation(body.Value)
	case "start-date":
		store.SetStartDate(filter.MaskDate(body.Value))
	case "min-pay":
		store.SetMinPay(body.Value)
	case "reset":
		store.ResetDraft()
	case "apply":
		store.ApplyDraft()
	case "discard":
		store.DiscardDraft()
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
		return
	}

	jsonOK(w, filterJSON(store.Draft()))
}

// filterView is the JSON projection of a filter.
type filterView struct {
	Locations []string `json:"locations"`
	StartDate string   `json:"startDate"`
	MinPay    string   `json:"minPay"`
}

func filterJSON(f model.Filter) filterView {
	locs := f.Locations
	if locs == nil {
		locs = []string{}
	}
	return filterView{Locations: locs, StartDate: f.StartDate, MinPay: f.MinPay}
}

// ─── Recency rail ────────────────────────────────────────────────────────────

// recentNotices handles GET /notices/recent. Optional shopId/noticeId query
// parameters name the currently active selection so it is merged to the
// front even when storage was stale.
func (h *Handler) recentNotices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := identityFromRequest(r)
	activeKey := ""
	shopID := r.URL.Query().Get("shopId")
	noticeID := r.URL.Query().Get("noticeId")
	if shopID != "" && noticeID != "" {
		activeKey = model.SelectionKey(shopID, noticeID)
	}

	cards := h.recent.Cards(r.Context(), id.UserID, activeKey)
	jsonOK(w, map[string]any{"items": cards})
}

// ─── Shop / notice routes ────────────────────────────────────────────────────

// handleShopPath dispatches
//
//	GET  /shops/{shopId}/notices/{noticeId}
//	POST /shops/{shopId}/notices/{noticeId}/applications
//	POST /shops/{shopId}/notices/{noticeId}/applications/cancel
func (h *Handler) handleShopPath(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "shops" || parts[2] != "notices" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	shopID, noticeID := parts[1], parts[3]

	switch {
	case len(parts) == 4 && r.Method == http.MethodGet:
		h.noticeDetail(w, r, shopID, noticeID)
	case len(parts) == 5 && parts[4] == "applications" && r.Method == http.MethodPost:
		h.applyToNotice(w, r, shopID, noticeID)
	case len(parts) == 6 && parts[4] == "applications" && parts[5] == "cancel" && r.Method == http.MethodPost:
		h.cancelApplication(w, r, shopID, noticeID)
	default:
		jsonError(w, "invalid path", http.StatusNotFound)
	}
}

// noticeDetail fetches one notice and records it in the caller's recency
// list as the current selection.
func (h *Handler) noticeDetail(w http.ResponseWriter, r *http.Request, shopID, noticeID string) {
	id := identityFromRequest(r)

	notice, err := h.api.GetNotice(r.Context(), shopID, noticeID)
	if err != nil {
		h.logger.Error("notice detail fetch failed", "shopId", shopID, "noticeId", noticeID, "err", err)
		jsonError(w, "notice not found", http.StatusNotFound)
		return
	}

	h.recent.Select(r.Context(), id.UserID, shopID, noticeID)

	state := intent.StateNone
	if !id.IsGuest() {
		state = h.intents.State(r.Context(), id.UserID, shopID, noticeID)
	}

	jsonOK(w, map[string]any{
		"item":             notice,
		"applicationState": state,
	})
}

func (h *Handler) applyToNotice(w http.ResponseWriter, r *http.Request, shopID, noticeID string) {
	id := identityFromRequest(r)
	if id.IsGuest() {
		jsonError(w, "sign in to apply", http.StatusUnauthorized)
		return
	}

	appID, err := h.intents.Apply(r.Context(), id.UserID, shopID, noticeID, id.Token)
	if err != nil {
		var verr *intent.ValidationError
		if errors.As(err, &verr) {
			jsonError(w, verr.Msg, http.StatusConflict)
			return
		}
		h.logger.Error("apply failed", "userId", id.UserID, "noticeId", noticeID, "err", err)
		jsonError(w, "failed to submit application", http.StatusBadGateway)
		return
	}

	jsonOK(w, map[string]string{"applicationId": appID, "state": string(intent.StateApplied)})
}

func (h *Handler) cancelApplication(w http.ResponseWriter, r *http.Request, shopID, noticeID string) {
	id := identityFromRequest(r)
	if id.IsGuest() {
		jsonError(w, "sign in to cancel", http.StatusUnauthorized)
		return
	}

	if err := h.intents.Cancel(r.Context(), id.UserID, shopID, noticeID, id.Token); err != nil {
		if errors.Is(err, intent.ErrNoApplication) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("cancel failed", "userId", id.UserID, "noticeId", noticeID, "err", err)
		jsonError(w, "failed to cancel application", http.StatusBadGateway)
		return
	}

	jsonOK(w, map[string]string{"state": string(intent.StateNone)})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// sessionKey picks the filter-store key for a request: the explicit session
// header when present, else the identity partition, else guest.
func sessionKey(r *http.Request) string {
	if s := r.Header.Get("x-session-id"); s != "" {
		return s
	}
	if id := identityFromRequest(r); !id.IsGuest() {
		return id.UserID
	}
	return "guest"
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
