package tmdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/tmdb"
)

func TestDiscoverMoviesQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"page": 1,
			"results": []map[string]any{
				{"id": 101, "title": "Test Movie", "vote_average": 7.2, "release_date": "2026-01-15"},
			},
		})
	}))
	defer srv.Close()

	client := tmdb.NewClient("test-key", srv.URL, 5*time.Second)
	movies, err := client.DiscoverMovies(context.Background(), tmdb.DiscoverParams{
		LanguageCode: "hi",
		GenreID:      28,
		DateFrom:     "2026-01-01",
		DateTo:       "2026-06-30",
		SortBy:       "popularity.desc",
		MinVoteCount: 10,
	})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	if gotPath != "/discover/movie" {
		t.Fatalf("path = %s", gotPath)
	}
	want := map[string]string{
		"api_key":                  "test-key",
		"with_genres":              "28",
		"with_original_language":   "hi",
		"primary_release_date.gte": "2026-01-01",
		"primary_release_date.lte": "2026-06-30",
		"sort_by":                  "popularity.desc",
		"vote_count.gte":           "10",
		"page":                     "1",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(movies) != 1 || movies[0].ID != 101 || movies[0].Title != "Test Movie" {
		t.Fatalf("movies = %+v", movies)
	}
}

func TestDiscoverTVDateParams(t *testing.T) {
	var queries []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		queries = append(queries, q)
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer srv.Close()

	client := tmdb.NewClient("k", srv.URL, 5*time.Second)
	p := tmdb.DiscoverParams{LanguageCode: "ta", GenreID: 18, DateFrom: "2025-01-01", DateTo: "2026-01-01"}

	if _, err := client.DiscoverTVByAirDate(context.Background(), p); err != nil {
		t.Fatalf("air date: %v", err)
	}
	if _, err := client.DiscoverTVByFirstAirDate(context.Background(), p); err != nil {
		t.Fatalf("first air date: %v", err)
	}

	if queries[0]["air_date.gte"] != "2025-01-01" || queries[0]["air_date.lte"] != "2026-01-01" {
		t.Fatalf("air date query = %v", queries[0])
	}
	if queries[1]["first_air_date.gte"] != "2025-01-01" || queries[1]["first_air_date.lte"] != "2026-01-01" {
		t.Fatalf("first air date query = %v", queries[1])
	}
}

func TestSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "inception" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("include_adult"); got != "false" {
			t.Errorf("include_adult = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": 27205, "title": "Inception"}},
		})
	}))
	defer srv.Close()

	client := tmdb.NewClient("k", srv.URL, 5*time.Second)
	movies, err := client.SearchMovies(context.Background(), "inception")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != 27205 {
		t.Fatalf("movies = %+v", movies)
	}
}

func TestWatchProviders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/550/watch/providers" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 550,
			"results": map[string]any{
				"IN": map[string]any{
					"flatrate": []map[string]any{
						{"provider_id": 8, "provider_name": "Netflix"},
					},
					"rent": []map[string]any{
						{"provider_id": 3, "provider_name": "Google Play Movies"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := tmdb.NewClient("k", srv.URL, 5*time.Second)
	providers, err := client.WatchProviders(context.Background(), "movie", 550)
	if err != nil {
		t.Fatalf("watch providers: %v", err)
	}

	in, ok := providers["IN"]
	if !ok {
		t.Fatalf("missing IN region: %v", providers)
	}
	if len(in.Flatrate) != 1 || in.Flatrate[0].ProviderID != 8 {
		t.Fatalf("flatrate = %+v", in.Flatrate)
	}
	if len(in.Rent) != 1 || in.Rent[0].ProviderName != "Google Play Movies" {
		t.Fatalf("rent = %+v", in.Rent)
	}
}

func TestNonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := tmdb.NewClient("bad-key", srv.URL, 5*time.Second)
	if _, err := client.SearchMovies(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
