package models

// DiscoverRequest asks for catalog content. Explicit filters win;
// otherwise they are extracted from the free-text prompt.
type DiscoverRequest struct {
	Prompt        string `json:"prompt"`
	Genre         string `json:"genre,omitempty"`
	Language      string `json:"language,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
	ReleasePeriod string `json:"release_period,omitempty"`
}

// SearchRequest is a global title search.
type SearchRequest struct {
	Query string `json:"query"`
}

// RecommendationRequest asks for personalized recommendations.
type RecommendationRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}
