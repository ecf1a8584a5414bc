package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

const (
	profileCacheTTL = 10 * time.Minute

	// Caps and minimum mention counts for ranked preference lists.
	maxPreferredGenres       = 10
	maxPreferredLanguages    = 5
	maxPreferredContentTypes = 3
	maxLikedActors           = 20
	maxLikedDirectors        = 10
	minActorMentions         = 2
	minDirectorMentions      = 2

	recentWindow    = 50
	recentLikedSize = 20
)

// PreferenceService records user interactions and maintains the
// derived preference profile. Writes for the same user are serialized;
// different users proceed in parallel.
type PreferenceService struct {
	interactions InteractionStore
	profiles     ProfileStore
	redis        *redis.Client

	mu      sync.Mutex
	userMus map[string]*sync.Mutex
}

// NewPreferenceService creates a new PreferenceService. rdb may be nil;
// the service then runs without the profile cache.
func NewPreferenceService(interactions InteractionStore, profiles ProfileStore, rdb *redis.Client) *PreferenceService {
	return &PreferenceService{
		interactions: interactions,
		profiles:     profiles,
		redis:        rdb,
		userMus:      map[string]*sync.Mutex{},
	}
}

func (s *PreferenceService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.userMus[userID]
	if !ok {
		m = &sync.Mutex{}
		s.userMus[userID] = m
	}
	return m
}

// RecordInteraction validates and stores an interaction event, then
// synchronously rebuilds the user's profile. Storage failures are
// returned to the caller, never swallowed.
func (s *PreferenceService) RecordInteraction(ctx context.Context, event models.InteractionEvent) error {
	if event.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if event.ContentID <= 0 {
		return fmt.Errorf("invalid content ID")
	}
	if event.ContentType != models.ContentTypeMovie && event.ContentType != models.ContentTypeTV {
		return fmt.Errorf("invalid content type: %s", event.ContentType)
	}
	if !models.ValidActions[event.Action] {
		return fmt.Errorf("invalid action: %s", event.Action)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	lock := s.userLock(event.UserID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.interactions.Upsert(ctx, event); err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}

	if err := s.rebuildProfile(ctx, event.UserID); err != nil {
		return fmt.Errorf("rebuild profile: %w", err)
	}

	slog.Info("recorded interaction",
		"user_id", event.UserID, "action", event.Action,
		"content_id", event.ContentID, "content_type", event.ContentType)
	return nil
}

// RemoveInteraction deletes one keyed event. A zero count means there
// was nothing to remove and the event list is untouched; otherwise the
// profile is rebuilt to reflect the absence.
func (s *PreferenceService) RemoveInteraction(ctx context.Context, userID string, contentID int, contentType string) (int, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	removed, err := s.interactions.Remove(ctx, userID, contentID, contentType)
	if err != nil {
		return 0, fmt.Errorf("remove interaction: %w", err)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.rebuildProfile(ctx, userID); err != nil {
		return removed, fmt.Errorf("rebuild profile: %w", err)
	}
	return removed, nil
}

// GetInteractions returns a user's events newest first, optionally
// filtered by action.
func (s *PreferenceService) GetInteractions(ctx context.Context, userID, action string) ([]models.InteractionEvent, error) {
	return s.interactions.List(ctx, userID, action)
}

// GetProfile returns the derived profile, or nil when the user has no
// preference data yet.
func (s *PreferenceService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	cacheKey := "user:profile:" + userID
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var p models.UserProfile
		if json.Unmarshal([]byte(cached), &p) == nil {
			return &p, nil
		}
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		s.setCache(ctx, cacheKey, string(data), profileCacheTTL)
	}
	return profile, nil
}

// AllProfiles returns every stored profile, for similar-user scans.
func (s *PreferenceService) AllProfiles(ctx context.Context) ([]models.UserProfile, error) {
	return s.profiles.All(ctx)
}

// RecentLiked returns a user's most recently liked events, newest
// first, capped at limit.
func (s *PreferenceService) RecentLiked(ctx context.Context, userID string, limit int) ([]models.InteractionEvent, error) {
	liked, err := s.interactions.List(ctx, userID, models.ActionLiked)
	if err != nil {
		return nil, err
	}
	if len(liked) > limit {
		liked = liked[:limit]
	}
	return liked, nil
}

// RecommendationContext builds the transient aggregate the
// recommendation engine works from.
func (s *PreferenceService) RecommendationContext(ctx context.Context, userID string) (models.RecommendationContext, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return models.RecommendationContext{}, err
	}

	events, err := s.interactions.List(ctx, userID, "")
	if err != nil {
		return models.RecommendationContext{}, err
	}

	recent := events
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}
	var recentLiked []models.InteractionEvent
	for _, e := range recent {
		if e.Action == models.ActionLiked {
			recentLiked = append(recentLiked, e)
			if len(recentLiked) == recentLikedSize {
				break
			}
		}
	}

	return models.RecommendationContext{
		Profile:           profile,
		RecentLiked:       recentLiked,
		TotalInteractions: len(events),
		HasPreferences:    profile != nil && len(profile.PreferredGenres) > 0,
	}, nil
}

// rebuildProfile recomputes the materialized profile from the current
// event set. Zero events delete the profile instead.
func (s *PreferenceService) rebuildProfile(ctx context.Context, userID string) error {
	events, err := s.interactions.List(ctx, userID, "")
	if err != nil {
		return err
	}

	s.delCache(ctx, "user:profile:"+userID)

	if len(events) == 0 {
		return s.profiles.Delete(ctx, userID)
	}

	profile := BuildProfile(userID, events, time.Now().UTC())

	// created_at is sticky across rebuilds
	if prior, err := s.profiles.Get(ctx, userID); err == nil {
		profile.CreatedAt = prior.CreatedAt
	}

	return s.profiles.Upsert(ctx, profile)
}

// BuildProfile derives a preference profile from an event set. Events
// must be ordered newest first. Pure: identical input yields identical
// output except for UpdatedAt, which is set to now.
func BuildProfile(userID string, events []models.InteractionEvent, now time.Time) models.UserProfile {
	var liked, disliked, watchlisted, watched int
	genres := newCounter()
	languages := newCounter()
	contentTypes := newCounter()
	actors := newCounter()
	directors := newCounter()

	// Taste is inferred from positive signals only; disliked is a
	// negative signal and watched is tracked just for exclusion.
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		switch e.Action {
		case models.ActionLiked:
			liked++
		case models.ActionDisliked:
			disliked++
			continue
		case models.ActionWatchlisted:
			watchlisted++
		case models.ActionWatched:
			watched++
			continue
		default:
			continue
		}

		for _, g := range e.Genres {
			if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
				genres.add(g)
			}
		}
		if lang := strings.ToLower(strings.TrimSpace(e.Language)); lang != "" {
			languages.add(lang)
		}
		if e.ContentType != "" {
			contentTypes.add(e.ContentType)
		}
		for _, a := range e.Actors {
			if a = strings.TrimSpace(a); a != "" {
				actors.add(a)
			}
		}
		for _, d := range e.Directors {
			if d = strings.TrimSpace(d); d != "" {
				directors.add(d)
			}
		}
	}

	lastActivity := now
	if len(events) > 0 {
		lastActivity = events[0].Timestamp
	}

	return models.UserProfile{
		UserID:                userID,
		PreferredGenres:       genres.top(maxPreferredGenres, 1),
		PreferredLanguages:    languages.top(maxPreferredLanguages, 1),
		PreferredContentTypes: contentTypes.top(maxPreferredContentTypes, 1),
		LikedActors:           actors.top(maxLikedActors, minActorMentions),
		LikedDirectors:        directors.top(maxLikedDirectors, minDirectorMentions),
		TotalInteractions:     len(events),
		TotalLiked:            liked,
		TotalDisliked:         disliked,
		TotalWatchlisted:      watchlisted,
		TotalWatched:          watched,
		CreatedAt:             now,
		UpdatedAt:             now,
		LastActivity:          lastActivity,
	}
}

// counter is a frequency counter that remembers first-seen order so
// that ranking ties break deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to limit keys ranked by count descending, dropping
// keys mentioned fewer than minCount times. Ties keep insertion order.
func (c *counter) top(limit, minCount int) []string {
	ranked := make([]string, len(c.order))
	copy(ranked, c.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})

	out := []string{}
	for _, key := range ranked {
		if c.counts[key] < minCount {
			continue
		}
		out = append(out, key)
		if len(out) == limit {
			break
		}
	}
	return out
}

// ---- Redis Helpers ----

func (s *PreferenceService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *PreferenceService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *PreferenceService) delCache(ctx context.Context, key string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, key)
}
