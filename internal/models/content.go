package models

import "strconv"

// StreamingPlatform is a single OTT platform a title is available on.
type StreamingPlatform struct {
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Color string `json:"color"`
}

// StreamingInfo holds regional streaming availability for a title.
type StreamingInfo struct {
	AvailableOn []StreamingPlatform `json:"available_on"`
	Rent        []StreamingPlatform `json:"rent"`
	Buy         []StreamingPlatform `json:"buy"`
}

// ContentItem is a movie or TV show as returned by the catalog.
// The recommendation engine augments it in place with
// recommendation_reason and personalization_score.
type ContentItem struct {
	ID               int      `json:"id"`
	ContentType      string   `json:"content_type"`
	Title            string   `json:"title"`
	Poster           string   `json:"poster,omitempty"`
	Rating           float64  `json:"rating"`
	Year             string   `json:"year,omitempty"`
	Overview         string   `json:"overview,omitempty"`
	ReleaseDate      string   `json:"release_date"`
	GenreIDs         []int    `json:"genre_ids,omitempty"`
	Genres           []string `json:"genres,omitempty"`
	Language         string   `json:"language,omitempty"`
	OriginalLanguage string   `json:"original_language,omitempty"`
	Popularity       float64  `json:"popularity"`
	VoteCount        int      `json:"vote_count"`

	Streaming *StreamingInfo `json:"streaming,omitempty"`

	RecommendationReason string  `json:"recommendation_reason,omitempty"`
	PersonalizationScore float64 `json:"personalization_score,omitempty"`
}

// Key identifies a content item across the catalog; duplicates from
// different recommendation strategies collapse onto it.
func (c ContentItem) Key() string {
	return strconv.Itoa(c.ID) + "_" + c.ContentType
}
