// ABOUTME: Per-session persistence of the page view state
// ABOUTME: Stores the active tab in the cache so reloads keep the selection

package viewstate

import (
	"context"
	"encoding/json"
	"time"

	"mediacheck/core/domain"
	"mediacheck/core/interfaces"
)

const keyPrefix = "view:"

// DefaultTTL keeps idle session state for a day.
const DefaultTTL = 24 * time.Hour

type record struct {
	ActiveTab string `json:"active_tab"`
}

// Store implements interfaces.ViewStore on top of a Cache
type Store struct {
	cache interfaces.Cache
	ttl   time.Duration
}

// NewStore creates a view state store
func NewStore(cache interfaces.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: cache, ttl: ttl}
}

// Load returns the stored state for session, or the default state when none is stored.
func (s *Store) Load(ctx context.Context, session string) domain.ViewState {
	state := domain.DefaultViewState()
	if s.cache == nil || session == "" {
		return state
	}

	var rec record
	if docs, ok := s.cache.(interfaces.DocumentCache); ok {
		if err := docs.GetDocument(ctx, keyPrefix+session, &rec); err != nil {
			return state
		}
		return state.Select(rec.ActiveTab)
	}

	data, err := s.cache.Get(ctx, keyPrefix+session)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return state
	}
	return state.Select(rec.ActiveTab)
}

// Save stores the state for session
func (s *Store) Save(ctx context.Context, session string, state domain.ViewState) error {
	if s.cache == nil || session == "" {
		return nil
	}

	rec := record{ActiveTab: state.ActiveTabID}
	if docs, ok := s.cache.(interfaces.DocumentCache); ok {
		return docs.SetDocument(ctx, keyPrefix+session, rec, s.ttl)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, keyPrefix+session, data, s.ttl)
}
