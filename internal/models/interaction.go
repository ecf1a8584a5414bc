package models

import "time"

// Content types supported by the catalog.
const (
	ContentTypeMovie = "movie"
	ContentTypeTV    = "tv"
	ContentTypeBoth  = "both"
)

// Interaction actions.
const (
	ActionLiked       = "liked"
	ActionDisliked    = "disliked"
	ActionWatchlisted = "watchlisted"
	ActionWatched     = "watched"
)

// ValidActions lists the accepted interaction actions.
var ValidActions = map[string]bool{
	ActionLiked:       true,
	ActionDisliked:    true,
	ActionWatchlisted: true,
	ActionWatched:     true,
}

// InteractionEvent records a single user action on a piece of content.
// At most one event is stored per (user_id, content_id, content_type);
// a newer event for the same key replaces the old one.
type InteractionEvent struct {
	UserID      string   `json:"user_id"`
	ContentID   int      `json:"content_id"`
	ContentType string   `json:"content_type"`
	Title       string   `json:"title"`
	Action      string   `json:"action"`
	Rating      *float64 `json:"rating,omitempty"`
	Genres      []string `json:"genres"`
	Language    string   `json:"language"`
	Actors      []string `json:"actors"`
	Directors   []string `json:"directors"`

	// Extra catalog data carried along for better recommendations.
	ReleaseDate string  `json:"release_date,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
