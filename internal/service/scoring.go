package service

import (
	"math"
	"strings"
	"time"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

// Origin tags which filtering strategy produced a candidate. The
// origin decides which strategy bonus applies during scoring; the
// bonuses are mutually exclusive because an item is scored once per
// originating strategy before the merge.
type Origin int

const (
	// OriginCollaborative carries the similar-user similarity score.
	OriginCollaborative Origin = iota
	// OriginContentBased carries a rating x popularity content score.
	OriginContentBased
	// OriginPopularity carries a rating x vote-count popularity score.
	OriginPopularity
)

// Candidate is a content item tagged with the strategy that produced
// it and that strategy's raw score.
type Candidate struct {
	Item   models.ContentItem
	Origin Origin
	// StrategyScore is the origin-specific raw value: similarity for
	// collaborative, content score for content-based, popularity score
	// for popularity-based.
	StrategyScore float64
}

// ScoreCandidate computes the composite personalization score for a
// candidate against the user's context. Deterministic and pure.
//
// base rating + 2.0 per matching genre + 1.5 for a preferred language
// + 0.5 for releases under a year old + the origin bonus, rounded to
// two decimals. The three strategy scales are kept comparable by the
// chosen multipliers; this is a tuned heuristic, not a calibrated
// model.
func ScoreCandidate(c Candidate, rc models.RecommendationContext) float64 {
	score := c.Item.Rating

	var preferredGenres, preferredLanguages []string
	if rc.Profile != nil {
		preferredGenres = rc.Profile.PreferredGenres
		preferredLanguages = rc.Profile.PreferredLanguages
	}

	score += 2.0 * float64(genreMatches(c.Item.Genres, preferredGenres))

	lang := c.Item.OriginalLanguage
	if lang == "" {
		lang = c.Item.Language
	}
	if containsFold(preferredLanguages, lang) {
		score += 1.5
	}

	if isRecentRelease(c.Item.ReleaseDate, time.Now()) {
		score += 0.5
	}

	switch c.Origin {
	case OriginCollaborative:
		score += c.StrategyScore * 2
	case OriginContentBased:
		score += c.StrategyScore / 10
	case OriginPopularity:
		score += c.StrategyScore
	}

	return math.Round(score*100) / 100
}

// genreMatches counts the case-insensitive set intersection between
// the item's genres and the preferred genres.
func genreMatches(itemGenres, preferred []string) int {
	if len(itemGenres) == 0 || len(preferred) == 0 {
		return 0
	}
	prefSet := make(map[string]bool, len(preferred))
	for _, g := range preferred {
		prefSet[strings.ToLower(g)] = true
	}
	seen := make(map[string]bool, len(itemGenres))
	matches := 0
	for _, g := range itemGenres {
		lower := strings.ToLower(g)
		if prefSet[lower] && !seen[lower] {
			seen[lower] = true
			matches++
		}
	}
	return matches
}

func containsFold(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// isRecentRelease reports whether the date parses and is under 365
// days old. Unparsable or missing dates contribute nothing.
func isRecentRelease(releaseDate string, now time.Time) bool {
	if len(releaseDate) < 10 {
		return false
	}
	t, err := time.Parse("2006-01-02", releaseDate[:10])
	if err != nil {
		return false
	}
	return now.Sub(t) < 365*24*time.Hour
}
