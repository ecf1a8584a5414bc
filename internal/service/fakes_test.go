package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

// memInteractionStore mimics the Postgres-backed store: one event per
// (user_id, content_id, content_type), newest first, capped at 200.
type memInteractionStore struct {
	mu     sync.Mutex
	events map[string][]models.InteractionEvent

	upsertErr error
	listErr   error
}

func newMemInteractionStore() *memInteractionStore {
	return &memInteractionStore{events: map[string][]models.InteractionEvent{}}
}

func (s *memInteractionStore) Upsert(_ context.Context, event models.InteractionEvent) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.events[event.UserID]
	filtered := list[:0]
	for _, e := range list {
		if e.ContentID == event.ContentID && e.ContentType == event.ContentType {
			continue
		}
		filtered = append(filtered, e)
	}
	// newest first
	list = append([]models.InteractionEvent{event}, filtered...)
	if len(list) > 200 {
		list = list[:200]
	}
	s.events[event.UserID] = list
	return nil
}

func (s *memInteractionStore) List(_ context.Context, userID, action string) ([]models.InteractionEvent, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.InteractionEvent
	for _, e := range s.events[userID] {
		if action == "" || e.Action == action {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memInteractionStore) Remove(_ context.Context, userID string, contentID int, contentType string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.events[userID]
	kept := list[:0]
	removed := 0
	for _, e := range list {
		if e.ContentID == contentID && e.ContentType == contentType {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.events[userID] = kept
	return removed, nil
}

// memProfileStore mirrors the Postgres contract: Get returns
// sql.ErrNoRows for missing profiles, All is ordered by user ID.
type memProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile

	allErr error
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{profiles: map[string]models.UserProfile{}}
}

func (s *memProfileStore) Upsert(_ context.Context, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *memProfileStore) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (s *memProfileStore) All(_ context.Context) ([]models.UserProfile, error) {
	if s.allErr != nil {
		return nil, s.allErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *memProfileStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

// fakeCatalog serves canned items per (languageCode, genre) and records
// the calls it receives.
type fakeCatalog struct {
	mu    sync.Mutex
	items map[string][]models.ContentItem
	calls []string
	err   error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string][]models.ContentItem{}}
}

func (f *fakeCatalog) set(languageCode, genre string, items ...models.ContentItem) {
	f.items[languageCode+"/"+genre] = items
}

func (f *fakeCatalog) FetchCatalog(_ context.Context, languageCode, genre, contentType, releasePeriod string) ([]models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("%s/%s/%s/%s", languageCode, genre, contentType, releasePeriod))
	if f.err != nil {
		return nil, f.err
	}
	return f.items[languageCode+"/"+genre], nil
}
