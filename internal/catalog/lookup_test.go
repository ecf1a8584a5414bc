package catalog_test

import (
	"testing"
	"time"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/catalog"
)

func TestGenreIDMovieAndTVDiverge(t *testing.T) {
	l := catalog.NewLookup()

	cases := []struct {
		genre       string
		contentType string
		want        int
	}{
		{"action", "movie", 28},
		{"action", "tv", 10759},
		{"adventure", "movie", 12},
		{"adventure", "tv", 10759},
		{"sci-fi", "movie", 878},
		{"sci-fi", "tv", 10765},
		{"science fiction", "movie", 878},
		{"fantasy", "tv", 10765},
		{"drama", "movie", 18},
		{"drama", "tv", 18},
		{"kids", "tv", 10762},
		{"Thriller", "movie", 53}, // case-insensitive
	}
	for _, tc := range cases {
		if got := l.GenreID(tc.genre, tc.contentType); got != tc.want {
			t.Errorf("GenreID(%q, %q) = %d, want %d", tc.genre, tc.contentType, got, tc.want)
		}
	}
}

func TestGenreIDFallbacks(t *testing.T) {
	l := catalog.NewLookup()

	// TV lookups fall back to the movie table for genres the TV
	// vocabulary lacks.
	if got := l.GenreID("thriller", "tv"); got != 53 {
		t.Fatalf("tv thriller = %d, want movie-table 53", got)
	}
	// Unknown genres default to action.
	if got := l.GenreID("noir", "movie"); got != 28 {
		t.Fatalf("unknown genre = %d, want 28", got)
	}
}

func TestLanguageCode(t *testing.T) {
	l := catalog.NewLookup()

	cases := map[string]string{
		"hindi": "hi", "Hindi": "hi", "english": "en", "tamil": "ta",
		"telugu": "te", "malayalam": "ml", "urdu": "ur",
	}
	for name, want := range cases {
		code, ok := l.LanguageCode(name)
		if !ok || code != want {
			t.Errorf("LanguageCode(%q) = %q/%v, want %q", name, code, ok, want)
		}
	}

	if _, ok := l.LanguageCode("klingon"); ok {
		t.Fatal("unknown language must not resolve")
	}
}

func TestPlatformRegistry(t *testing.T) {
	l := catalog.NewLookup()

	p, ok := l.Platform(8)
	if !ok || p.Name != "Netflix" || p.Color != "#E50914" {
		t.Fatalf("Platform(8) = %+v/%v", p, ok)
	}
	if _, ok := l.Platform(999999); ok {
		t.Fatal("unknown provider must not resolve")
	}
}

func TestDateRange(t *testing.T) {
	cases := map[string]int{
		"6months": 180,
		"1year":   365,
		"2years":  730,
		"3years":  1095,
	}
	for period, days := range cases {
		from, to := catalog.DateRange(period)
		wantFrom := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
		wantTo := time.Now().Format("2006-01-02")
		if from != wantFrom || to != wantTo {
			t.Errorf("DateRange(%q) = (%s, %s), want (%s, %s)", period, from, to, wantFrom, wantTo)
		}
	}

	// "all" and unknown periods start at the fixed epoch.
	for _, period := range []string{"all", "bogus", ""} {
		from, _ := catalog.DateRange(period)
		if from != "2000-01-01" {
			t.Errorf("DateRange(%q) from = %s, want 2000-01-01", period, from)
		}
	}
}

func TestExtractFilters(t *testing.T) {
	l := catalog.NewLookup()

	cases := []struct {
		prompt      string
		genre       string
		language    string
		contentType string
	}{
		{"hindi action movies please", "action", "hindi", "movie"},
		{"tamil comedy shows", "comedy", "tamil", "tv"},
		{"best thriller", "thriller", "hindi", "both"},
		{"something to watch", "action", "hindi", "both"},
		{"telugu films and tv series", "action", "telugu", "both"}, // both signals => both
		{"MALAYALAM DRAMA SERIES", "drama", "malayalam", "tv"},
	}
	for _, tc := range cases {
		genre, language, contentType := l.ExtractFilters(tc.prompt)
		if genre != tc.genre || language != tc.language || contentType != tc.contentType {
			t.Errorf("ExtractFilters(%q) = (%s, %s, %s), want (%s, %s, %s)",
				tc.prompt, genre, language, contentType, tc.genre, tc.language, tc.contentType)
		}
	}
}
