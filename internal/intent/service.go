package intent

import (
	"context"
	"log/slog"

	"workbee/board-service/internal/boardapi"
	"workbee/board-service/internal/model"
)

// Store is the cache surface the service needs; satisfied by *Cache.
type Store interface {
	Save(ctx context.Context, userID, selectionKey, applicationID string)
	Load(ctx context.Context, userID, selectionKey string) (string, error)
	Clear(ctx context.Context, userID, selectionKey string)
}

// API is the slice of the board API the service uses.
type API interface {
	CreateApplication(ctx context.Context, shopID, noticeID, token string) (string, error)
	CancelApplication(ctx context.Context, shopID, noticeID, applicationID, token string) error
	ListUserApplications(ctx context.Context, userID, token string) ([]boardapi.ApplicationRecord, error)
}

// Service drives the apply/cancel state machine against the board API and
// keeps the intent cache in step with it.
type Service struct {
	api    API
	store  Store
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(api API, store Store, logger *slog.Logger) *Service {
	return &Service{api: api, store: store, logger: logger}
}

// State reports the cached client-side state for the pair. A storage error
// is logged and reads as NO_APPLICATION.
func (s *Service) State(ctx context.Context, userID, shopID, noticeID string) State {
	key := model.SelectionKey(shopID, noticeID)
	id, err := s.store.Load(ctx, userID, key)
	if err != nil {
		s.logger.Warn("intent cache read failed", "userId", userID, "selection", key, "err", err)
	}
	if id == "" {
		return StateNone
	}
	return StateApplied
}

// Apply submits an application. The transition NO_APPLICATION → APPLIED is
// enforced against the cached state; on success the returned id is stored
// best-effort. A failed submit leaves the state unchanged and the error is
// surfaced to the user.
func (s *Service) Apply(ctx context.Context, userID, shopID, noticeID, token string) (string, error) {
	if !IsTransitionAllowed(s.State(ctx, userID, shopID, noticeID), StateApplied) {
		return "", &ValidationError{Msg: "already applied to this notice"}
	}

	id, err := s.api.CreateApplication(ctx, shopID, noticeID, token)
	if err != nil {
		return "", err
	}

	s.store.Save(ctx, userID, model.SelectionKey(shopID, noticeID), id)
	return id, nil
}

// Cancel withdraws the user's application without re-querying the server
// when the cached id is present. On a cache miss (cleared storage, another
// device) the id is resolved from the user's application list instead.
// The cache entry is cleared only after the server accepts the cancel.
func (s *Service) Cancel(ctx context.Context, userID, shopID, noticeID, token string) error {
	key := model.SelectionKey(shopID, noticeID)

	id, err := s.store.Load(ctx, userID, key)
	if err != nil {
		s.logger.Warn("intent cache read failed", "userId", userID, "selection", key, "err", err)
	}
	if id == "" {
		id, err = s.resolveApplicationID(ctx, userID, shopID, noticeID, token)
		if err != nil {
			return err
		}
	}

	if err := s.api.CancelApplication(ctx, shopID, noticeID, id, token); err != nil {
		return err
	}

	s.store.Clear(ctx, userID, key)
	return nil
}

// resolveApplicationID finds the user's pending application for a notice
// from the server's application list.
func (s *Service) resolveApplicationID(ctx context.Context, userID, shopID, noticeID, token string) (string, error) {
	records, err := s.api.ListUserApplications(ctx, userID, token)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if r.ShopID == shopID && r.NoticeID == noticeID && r.Status == "pending" {
			return r.ID, nil
		}
	}
	return "", ErrNoApplication
}
