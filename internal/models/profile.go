package models

import "time"

// UserProfile is a materialized view over a user's interaction events.
// It is fully recomputed on every record/remove, never hand-edited.
type UserProfile struct {
	UserID                string   `json:"user_id"`
	PreferredGenres       []string `json:"preferred_genres"`
	PreferredLanguages    []string `json:"preferred_languages"`
	PreferredContentTypes []string `json:"preferred_content_types"`
	LikedActors           []string `json:"liked_actors"`
	LikedDirectors        []string `json:"liked_directors"`

	TotalInteractions int `json:"total_interactions"`
	TotalLiked        int `json:"total_liked"`
	TotalDisliked     int `json:"total_disliked"`
	TotalWatchlisted  int `json:"total_watchlisted"`
	TotalWatched      int `json:"total_watched"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActivity time.Time `json:"last_activity"`
}

// RecommendationContext is the transient per-request aggregate the
// recommendation engine works from. Never persisted.
type RecommendationContext struct {
	Profile           *UserProfile       `json:"profile"`
	RecentLiked       []InteractionEvent `json:"recent_liked"`
	TotalInteractions int                `json:"total_interactions"`
	HasPreferences    bool               `json:"has_preferences"`
}
