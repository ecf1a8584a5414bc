package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client. All calls share the given
// timeout; a call exceeding it is treated as failed, not retried.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// ---- TMDB Response Types (internal, not exposed to consumers) ----

// MovieResult is a movie from TMDB discover/search results.
type MovieResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// TVResult is a TV show from TMDB discover/search results.
type TVResult struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	FirstAirDate     string  `json:"first_air_date"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

type movieListResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type tvListResponse struct {
	Page         int        `json:"page"`
	Results      []TVResult `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// Provider is a single watch provider entry.
type Provider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// RegionProviders groups providers by availability model for one region.
type RegionProviders struct {
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
}

type watchProvidersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

// DiscoverParams narrows a discover query.
type DiscoverParams struct {
	LanguageCode string
	GenreID      int
	DateFrom     string
	DateTo       string
	SortBy       string
	MinVoteCount int
}

// ---- Client Methods ----

// DiscoverMovies fetches movies from the TMDB discover endpoint,
// filtered by primary release date window.
func (c *Client) DiscoverMovies(ctx context.Context, p DiscoverParams) ([]MovieResult, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(p.GenreID))
	q.Set("with_original_language", p.LanguageCode)
	q.Set("primary_release_date.gte", p.DateFrom)
	q.Set("primary_release_date.lte", p.DateTo)
	q.Set("sort_by", p.SortBy)
	q.Set("vote_count.gte", strconv.Itoa(p.MinVoteCount))
	q.Set("page", "1")

	slog.Debug("fetching TMDB discover movies", "genre_id", p.GenreID, "language", p.LanguageCode)
	var result movieListResponse
	if err := c.getJSON(ctx, "/discover/movie", q, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// DiscoverTVByAirDate fetches TV shows with episodes airing in the window.
func (c *Client) DiscoverTVByAirDate(ctx context.Context, p DiscoverParams) ([]TVResult, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(p.GenreID))
	q.Set("with_original_language", p.LanguageCode)
	q.Set("air_date.gte", p.DateFrom)
	q.Set("air_date.lte", p.DateTo)
	q.Set("sort_by", p.SortBy)
	q.Set("page", "1")

	slog.Debug("fetching TMDB discover tv by air date", "genre_id", p.GenreID, "language", p.LanguageCode)
	var result tvListResponse
	if err := c.getJSON(ctx, "/discover/tv", q, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// DiscoverTVByFirstAirDate fetches TV shows whose first air date falls
// in the window.
func (c *Client) DiscoverTVByFirstAirDate(ctx context.Context, p DiscoverParams) ([]TVResult, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(p.GenreID))
	q.Set("with_original_language", p.LanguageCode)
	q.Set("first_air_date.gte", p.DateFrom)
	q.Set("first_air_date.lte", p.DateTo)
	q.Set("sort_by", p.SortBy)
	q.Set("vote_count.gte", strconv.Itoa(p.MinVoteCount))
	q.Set("page", "1")

	slog.Debug("fetching TMDB discover tv by first air date", "genre_id", p.GenreID, "language", p.LanguageCode)
	var result tvListResponse
	if err := c.getJSON(ctx, "/discover/tv", q, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// SearchMovies searches movies globally by title.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]MovieResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("include_adult", "false")

	slog.Debug("searching TMDB movies", "query", query)
	var result movieListResponse
	if err := c.getJSON(ctx, "/search/movie", q, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// SearchTV searches TV shows globally by title.
func (c *Client) SearchTV(ctx context.Context, query string) ([]TVResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("include_adult", "false")

	slog.Debug("searching TMDB tv shows", "query", query)
	var result tvListResponse
	if err := c.getJSON(ctx, "/search/tv", q, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// WatchProviders fetches regional streaming availability for one title.
// contentType is "movie" or "tv".
func (c *Client) WatchProviders(ctx context.Context, contentType string, id int) (map[string]RegionProviders, error) {
	var result watchProvidersResponse
	path := fmt.Sprintf("/%s/%d/watch/providers", contentType, id)
	if err := c.getJSON(ctx, path, url.Values{}, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}
