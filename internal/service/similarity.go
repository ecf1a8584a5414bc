package service

import (
	"sort"
	"strings"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

// similarityThreshold is a hard cutoff: user pairs at or below it are
// discarded, not merely ranked low.
const similarityThreshold = 0.3

// SimilarUser pairs a user with their similarity to the target.
type SimilarUser struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
}

// SimilarUsers ranks all other users by taste similarity to the
// target: the mean of genre-set and language-set Jaccard similarity,
// in [0,1]. Only pairs scoring above the threshold are kept. The sort
// is stable, so ties keep the input profile order.
func SimilarUsers(target models.UserProfile, all []models.UserProfile) []SimilarUser {
	targetGenres := foldSet(target.PreferredGenres)
	targetLanguages := foldSet(target.PreferredLanguages)

	var similar []SimilarUser
	for _, other := range all {
		if other.UserID == target.UserID {
			continue
		}
		genreSim := jaccard(targetGenres, foldSet(other.PreferredGenres))
		langSim := jaccard(targetLanguages, foldSet(other.PreferredLanguages))
		overall := (genreSim + langSim) / 2

		if overall > similarityThreshold {
			similar = append(similar, SimilarUser{UserID: other.UserID, Score: overall})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Score > similar[j].Score
	})
	return similar
}

// jaccard is |a ∩ b| / |a ∪ b| with the denominator floored at 1, so
// two empty sets score a defined 0.
func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	union := len(b)
	for k := range a {
		if b[k] {
			intersection++
		} else {
			union++
		}
	}
	if union < 1 {
		union = 1
	}
	return float64(intersection) / float64(union)
}

func foldSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
