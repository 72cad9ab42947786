// Package filter implements the notice filter state container.
//
// A Store holds two filters: the draft being edited in the filter modal and
// the applied filter in effect on the listing. The applied filter changes
// only through ApplyDraft; DiscardDraft and SyncDraftFromApplied revert
// unsaved edits, so cancelling the modal has no side effects.
package filter

import (
	"strings"
	"sync"

	"workbee/board-service/internal/model"
)

// Store is an explicit filter state container. It is safe for concurrent
// use by multiple requests of the same session.
type Store struct {
	mu      sync.Mutex
	draft   model.Filter
	applied model.Filter
}

// NewStore returns a Store with empty draft and applied filters.
func NewStore() *Store {
	return &Store{}
}

// Draft returns a copy of the draft filter.
func (s *Store) Draft() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Applied returns a copy of the applied filter.
func (s *Store) Applied() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied.Clone()
}

// SyncDraftFromApplied copies the applied filter into the draft, discarding
// any prior unsaved edits. Called on every filter-session open.
func (s *Store) SyncDraftFromApplied() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = s.applied.Clone()
}

// ToggleLocation adds loc to the draft's location set if absent and removes
// it if present. Toggling is idempotent, no validation needed.
func (s *Store) ToggleLocation(loc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.draft.Locations {
		if l == loc {
			s.draft.Locations = append(s.draft.Locations[:i], s.draft.Locations[i+1:]...)
			return
		}
	}
	s.draft.Locations = append(s.draft.Locations, loc)
}

// RemoveLocation removes loc from the draft unconditionally.
func (s *Store) RemoveLocation(loc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.draft.Locations {
		if l == loc {
			s.draft.Locations = append(s.draft.Locations[:i], s.draft.Locations[i+1:]...)
			return
		}
	}
}

// SetStartDate stores a raw date string. Formatting and validation are the
// caller's responsibility; see MaskDate.
func (s *Store) SetStartDate(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.StartDate = value
}

// SetMinPay strips all non-digit characters before storing, so the stored
// value is always numeric text or empty.
func (s *Store) SetMinPay(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.MinPay = stripNonDigits(value)
}

// ResetDraft sets the draft to the empty filter. Distinct from DiscardDraft,
// which reverts to the applied filter.
func (s *Store) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = model.Filter{}
}

// ApplyDraft copies the draft into the applied filter. This is the only
// mutator of the applied filter.
func (s *Store) ApplyDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.draft.Clone()
}

// DiscardDraft reverts unsaved edits, identical in effect to
// SyncDraftFromApplied.
func (s *Store) DiscardDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = s.applied.Clone()
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
