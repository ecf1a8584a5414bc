package catalog

import "strings"

var movieKeywords = []string{"movie", "movies", "film", "films"}
var tvKeywords = []string{"show", "shows", "tv", "series", "television"}

// ExtractFilters pulls genre, language and content type out of a
// free-text prompt by keyword matching. Missing signals fall back to
// the defaults; ambiguous content-type signals resolve to both.
func (l Lookup) ExtractFilters(prompt string) (genre, language, contentType string) {
	lower := strings.ToLower(prompt)

	genre = DefaultGenre
	for _, e := range l.movieGenres {
		if strings.Contains(lower, e.name) {
			genre = e.name
			break
		}
	}

	language = DefaultLanguage
	for _, e := range l.languages {
		if strings.Contains(lower, e.name) {
			language = e.name
			break
		}
	}

	hasMovies := containsAny(lower, movieKeywords)
	hasShows := containsAny(lower, tvKeywords)
	switch {
	case hasMovies && !hasShows:
		contentType = "movie"
	case hasShows && !hasMovies:
		contentType = "tv"
	default:
		contentType = DefaultContentType
	}
	return genre, language, contentType
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
