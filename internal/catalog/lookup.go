package catalog

import "strings"

// Default filter values used when a request leaves them unspecified.
const (
	DefaultGenre       = "action"
	DefaultLanguage    = "hindi"
	DefaultContentType = "both"
	DefaultPeriod      = "6months"
)

// Platform describes a known OTT platform.
type Platform struct {
	Name  string
	Logo  string
	Color string
}

// genreEntry keeps the name-to-ID tables ordered so that prompt
// scanning and fallback iteration stay deterministic.
type genreEntry struct {
	name string
	id   int
}

// Lookup holds the static genre, language and platform tables. It is
// built once at startup and passed by value; nothing mutates it.
type Lookup struct {
	movieGenres []genreEntry
	tvGenres    []genreEntry
	languages   []langEntry
	platforms   map[int]Platform
}

type langEntry struct {
	name string
	code string
}

// NewLookup returns the static mapping tables. Movie and TV genre
// vocabularies diverge for several genres (TMDB merges action with
// adventure and fantasy with sci-fi for TV).
func NewLookup() Lookup {
	return Lookup{
		movieGenres: []genreEntry{
			{"action", 28}, {"adventure", 12}, {"animation", 16},
			{"comedy", 35}, {"crime", 80}, {"documentary", 99},
			{"drama", 18}, {"family", 10751}, {"fantasy", 14},
			{"history", 36}, {"horror", 27}, {"music", 10402},
			{"mystery", 9648}, {"romance", 10749}, {"sci-fi", 878},
			{"science fiction", 878}, {"thriller", 53}, {"war", 10752},
			{"western", 37}, {"tv movie", 10770},
		},
		tvGenres: []genreEntry{
			{"action", 10759}, {"adventure", 10759}, {"animation", 16},
			{"comedy", 35}, {"crime", 80}, {"documentary", 99},
			{"drama", 18}, {"family", 10751}, {"fantasy", 10765},
			{"sci-fi", 10765}, {"science fiction", 10765},
			{"mystery", 9648}, {"western", 37}, {"kids", 10762},
			{"news", 10763}, {"reality", 10764}, {"soap", 10766},
			{"talk", 10767}, {"war", 10768}, {"politics", 10768},
		},
		languages: []langEntry{
			{"hindi", "hi"}, {"english", "en"}, {"tamil", "ta"},
			{"telugu", "te"}, {"malayalam", "ml"}, {"kannada", "kn"},
			{"bengali", "bn"}, {"marathi", "mr"}, {"gujarati", "gu"},
			{"punjabi", "pa"}, {"urdu", "ur"},
		},
		platforms: map[int]Platform{
			8:   {Name: "Netflix", Logo: "netflix.png", Color: "#E50914"},
			119: {Name: "Amazon Prime", Logo: "prime.png", Color: "#00A8E1"},
			377: {Name: "Disney+ Hotstar", Logo: "hotstar.png", Color: "#1F80E0"},
			315: {Name: "Hotstar", Logo: "hotstar.png", Color: "#1F80E0"},
			232: {Name: "Jio Cinema", Logo: "jiocinema.png", Color: "#8B2874"},
			282: {Name: "Sony LIV", Logo: "sonyliv.png", Color: "#0066CC"},
			233: {Name: "Sony LIV", Logo: "sonyliv.png", Color: "#0066CC"},
			251: {Name: "Zee5", Logo: "zee5.png", Color: "#6C2483"},
			237: {Name: "Voot", Logo: "voot.png", Color: "#FF6600"},
			283: {Name: "Eros Now", Logo: "erosnow.png", Color: "#FF0000"},
			531: {Name: "Alt Balaji", Logo: "altbalaji.png", Color: "#FF8C00"},
			484: {Name: "Apple TV+", Logo: "appletv.png", Color: "#000000"},
			350: {Name: "Apple TV", Logo: "appletv.png", Color: "#000000"},
			2:   {Name: "Apple iTunes", Logo: "apple.png", Color: "#A855F7"},
			3:   {Name: "Google Play", Logo: "google.png", Color: "#4285F4"},
		},
	}
}

// GenreID resolves a genre name to the TMDB genre ID for the given
// content type. TV lookups fall back to the movie table for genres the
// TV vocabulary lacks; unknown genres default to action (28).
func (l Lookup) GenreID(genre, contentType string) int {
	name := strings.ToLower(genre)
	if contentType == "tv" {
		if id, ok := findGenre(l.tvGenres, name); ok {
			return id
		}
	}
	if id, ok := findGenre(l.movieGenres, name); ok {
		return id
	}
	return 28
}

func findGenre(entries []genreEntry, name string) (int, bool) {
	for _, e := range entries {
		if e.name == name {
			return e.id, true
		}
	}
	return 0, false
}

// LanguageCode resolves a language name to its ISO 639-1 code.
func (l Lookup) LanguageCode(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, e := range l.languages {
		if e.name == lower {
			return e.code, true
		}
	}
	return "", false
}

// Platform returns the registered OTT platform for a TMDB provider ID.
func (l Lookup) Platform(providerID int) (Platform, bool) {
	p, ok := l.platforms[providerID]
	return p, ok
}
