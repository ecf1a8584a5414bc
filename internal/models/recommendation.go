package models

// Recommendation algorithm tags.
const (
	AlgorithmHybrid          = "hybrid_personalized"
	AlgorithmPopularFallback = "popular_fallback"
	AlgorithmError           = "error"
)

// Personalization levels, coarse confidence buckets based on how much
// interaction data backs the recommendations.
const (
	PersonalizationNone   = "none"
	PersonalizationLow    = "low"
	PersonalizationMedium = "medium"
	PersonalizationHigh   = "high"
)

// UserStats summarizes the interaction volume behind a recommendation
// response.
type UserStats struct {
	TotalInteractions int      `json:"total_interactions"`
	TotalLiked        int      `json:"total_liked"`
	TopGenres         []string `json:"top_genres"`
}

// RecommendationResponse is the recommendation engine's output.
type RecommendationResponse struct {
	Recommendations      []ContentItem `json:"recommendations"`
	Algorithm            string        `json:"algorithm"`
	PersonalizationLevel string        `json:"personalization_level"`
	UserStats            *UserStats    `json:"user_stats,omitempty"`
	Message              string        `json:"message,omitempty"`
	TotalFound           int           `json:"total_found"`
	GeneratedAt          string        `json:"generated_at"`
}
