package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/catalog"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

const (
	recommendationCacheTTL = 10 * time.Minute

	maxSimilarUsers     = 5
	likedPerSimilarUser = 10
	genresPerQuery      = 3
	languagesPerQuery   = 2
	itemsPerCombination = 3

	fallbackLanguageCode = "hi"
	fallbackGenre        = "drama"

	fallbackMessage = "Start liking content to get personalized recommendations!"
)

// RecommendationService blends collaborative, content-based and
// popularity-based filtering into one ranked recommendation list.
type RecommendationService struct {
	prefs   *PreferenceService
	catalog CatalogFetcher
	lookup  catalog.Lookup
	rdb     *redis.Client
}

// NewRecommendationService creates a new RecommendationService. rdb
// may be nil; responses are then not cached.
func NewRecommendationService(prefs *PreferenceService, fetcher CatalogFetcher, lookup catalog.Lookup, rdb *redis.Client) *RecommendationService {
	return &RecommendationService{
		prefs:   prefs,
		catalog: fetcher,
		lookup:  lookup,
		rdb:     rdb,
	}
}

// GetPersonalizedRecommendations is the orchestrator entry point.
// Users without preference data get the popular fallback; otherwise
// the three strategies run, their results merge in fixed order, and
// the scoring engine ranks the survivors. A failing strategy degrades
// to an empty list and never aborts the request.
func (s *RecommendationService) GetPersonalizedRecommendations(ctx context.Context, userID string, limit int) *models.RecommendationResponse {
	cacheKey := fmt.Sprintf("recommendations:%s:%d", userID, limit)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var resp models.RecommendationResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			slog.Debug("recommendations cache hit", "user_id", userID)
			return &resp
		}
	}

	rc, err := s.prefs.RecommendationContext(ctx, userID)
	if err != nil {
		slog.Error("failed to build recommendation context", "user_id", userID, "error", err)
		return s.popularFallback(ctx, limit)
	}

	if !rc.HasPreferences {
		return s.popularFallback(ctx, limit)
	}

	perStrategy := limit / 3

	collaborative := s.runStrategy("collaborative", func() ([]Candidate, error) {
		return s.collaborativeFiltering(ctx, rc, perStrategy)
	})
	contentBased := s.runStrategy("content_based", func() ([]Candidate, error) {
		return s.contentBasedFiltering(ctx, rc, perStrategy)
	})
	popular := s.runStrategy("popularity", func() ([]Candidate, error) {
		return s.popularityFiltering(ctx, rc, perStrategy)
	})

	// Fixed merge order resolves duplicate-key conflicts in favor of
	// collaborative results.
	merged := MergeCandidates(collaborative, contentBased, popular)

	items := make([]models.ContentItem, len(merged))
	for i, c := range merged {
		c.Item.PersonalizationScore = ScoreCandidate(c, rc)
		items[i] = c.Item
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PersonalizationScore > items[j].PersonalizationScore
	})
	if len(items) > limit {
		items = items[:limit]
	}

	topGenres := rc.Profile.PreferredGenres
	if len(topGenres) > genresPerQuery {
		topGenres = topGenres[:genresPerQuery]
	}

	resp := &models.RecommendationResponse{
		Recommendations:      items,
		Algorithm:            models.AlgorithmHybrid,
		PersonalizationLevel: personalizationLevel(rc),
		UserStats: &models.UserStats{
			TotalInteractions: rc.TotalInteractions,
			TotalLiked:        rc.Profile.TotalLiked,
			TopGenres:         topGenres,
		},
		TotalFound:  len(items),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if data, err := json.Marshal(resp); err == nil {
		s.setCache(ctx, cacheKey, data, recommendationCacheTTL)
	}
	return resp
}

// runStrategy logs and absorbs a strategy failure so one broken signal
// cannot take down the whole request.
func (s *RecommendationService) runStrategy(name string, fn func() ([]Candidate, error)) []Candidate {
	candidates, err := fn()
	if err != nil {
		slog.Error("recommendation strategy failed", "strategy", name, "error", err)
		return nil
	}
	return candidates
}

// collaborativeFiltering surfaces content recently liked by the
// closest similar users.
func (s *RecommendationService) collaborativeFiltering(ctx context.Context, rc models.RecommendationContext, limit int) ([]Candidate, error) {
	all, err := s.prefs.AllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	similar := SimilarUsers(*rc.Profile, all)
	if len(similar) > maxSimilarUsers {
		similar = similar[:maxSimilarUsers]
	}

	var candidates []Candidate
	for _, su := range similar {
		liked, err := s.prefs.RecentLiked(ctx, su.UserID, likedPerSimilarUser)
		if err != nil {
			slog.Warn("could not load liked content for similar user", "user_id", su.UserID, "error", err)
			continue
		}
		for _, e := range liked {
			candidates = append(candidates, Candidate{
				Item: models.ContentItem{
					ID:                   e.ContentID,
					ContentType:          e.ContentType,
					Title:                e.Title,
					Genres:               e.Genres,
					Language:             e.Language,
					RecommendationReason: "Users with similar taste liked this",
				},
				Origin:        OriginCollaborative,
				StrategyScore: su.Score,
			})
		}
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// contentBasedFiltering fetches catalog content for the top preferred
// genre/language combinations, excluding what the user already liked.
func (s *RecommendationService) contentBasedFiltering(ctx context.Context, rc models.RecommendationContext, limit int) ([]Candidate, error) {
	if len(rc.RecentLiked) == 0 {
		return nil, nil
	}

	genres := rc.Profile.PreferredGenres
	if len(genres) > genresPerQuery {
		genres = genres[:genresPerQuery]
	}
	languages := rc.Profile.PreferredLanguages
	if len(languages) > languagesPerQuery {
		languages = languages[:languagesPerQuery]
	}

	seen := make(map[int]bool, len(rc.RecentLiked))
	for _, e := range rc.RecentLiked {
		seen[e.ContentID] = true
	}

	var candidates []Candidate
	for _, genre := range genres {
		for _, language := range languages {
			code, ok := s.lookup.LanguageCode(language)
			if !ok {
				code = "en"
			}

			items, err := s.catalog.FetchCatalog(ctx, code, genre, models.ContentTypeBoth, "2years")
			if err != nil {
				slog.Warn("content-based catalog fetch failed", "genre", genre, "language", language, "error", err)
				continue
			}

			added := 0
			for _, item := range items {
				if seen[item.ID] {
					continue
				}
				item.RecommendationReason = fmt.Sprintf("You like %s content in %s", genre, language)
				pop := item.Popularity
				if pop == 0 {
					pop = 1
				}
				candidates = append(candidates, Candidate{
					Item:          item,
					Origin:        OriginContentBased,
					StrategyScore: item.Rating * pop,
				})
				added++
				if added == itemsPerCombination {
					break
				}
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StrategyScore > candidates[j].StrategyScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// popularityFiltering fetches recent popular content for the user's
// single top genre and language.
func (s *RecommendationService) popularityFiltering(ctx context.Context, rc models.RecommendationContext, limit int) ([]Candidate, error) {
	if len(rc.Profile.PreferredGenres) == 0 || len(rc.Profile.PreferredLanguages) == 0 {
		return nil, nil
	}

	genre := rc.Profile.PreferredGenres[0]
	language := rc.Profile.PreferredLanguages[0]
	code, ok := s.lookup.LanguageCode(language)
	if !ok {
		code = "en"
	}

	items, err := s.catalog.FetchCatalog(ctx, code, genre, models.ContentTypeBoth, "6months")
	if err != nil {
		return nil, fmt.Errorf("popularity catalog fetch: %w", err)
	}

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		item.RecommendationReason = fmt.Sprintf("Popular %s content in %s", genre, language)
		votes := item.VoteCount
		if votes == 0 {
			votes = 1
		}
		candidates = append(candidates, Candidate{
			Item:          item,
			Origin:        OriginPopularity,
			StrategyScore: item.Rating * float64(votes) / 1000,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StrategyScore > candidates[j].StrategyScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// MergeCandidates concatenates strategy outputs in the given order and
// deduplicates by (content_id, content_type); the first occurrence
// wins.
func MergeCandidates(lists ...[]Candidate) []Candidate {
	seen := map[string]bool{}
	var merged []Candidate
	for _, list := range lists {
		for _, c := range list {
			key := c.Item.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, c)
		}
	}
	return merged
}

// personalizationLevel buckets confidence by interaction volume.
func personalizationLevel(rc models.RecommendationContext) string {
	totalLiked := 0
	if rc.Profile != nil {
		totalLiked = rc.Profile.TotalLiked
	}
	switch {
	case rc.TotalInteractions >= 20 && totalLiked >= 10:
		return models.PersonalizationHigh
	case rc.TotalInteractions >= 5 && totalLiked >= 3:
		return models.PersonalizationMedium
	default:
		return models.PersonalizationLow
	}
}

// popularFallback serves users without preference data a fixed default
// catalog slice. Its own failure is the only path that reports the
// error algorithm tag.
func (s *RecommendationService) popularFallback(ctx context.Context, limit int) *models.RecommendationResponse {
	items, err := s.catalog.FetchCatalog(ctx, fallbackLanguageCode, fallbackGenre, models.ContentTypeBoth, catalog.DefaultPeriod)
	if err != nil {
		slog.Error("popular fallback fetch failed", "error", err)
		return &models.RecommendationResponse{
			Recommendations:      []models.ContentItem{},
			Algorithm:            models.AlgorithmError,
			PersonalizationLevel: models.PersonalizationNone,
			GeneratedAt:          time.Now().UTC().Format(time.RFC3339),
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return &models.RecommendationResponse{
		Recommendations:      items,
		Algorithm:            models.AlgorithmPopularFallback,
		PersonalizationLevel: models.PersonalizationNone,
		Message:              fallbackMessage,
		TotalFound:           len(items),
		GeneratedAt:          time.Now().UTC().Format(time.RFC3339),
	}
}

// ---- Redis Helpers ----

func (s *RecommendationService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.rdb == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.rdb.Get(ctx, key).Result()
}

func (s *RecommendationService) setCache(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
