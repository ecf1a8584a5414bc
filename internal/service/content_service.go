package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/catalog"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/tmdb"
)

const (
	maxResultsPerType     = 20
	maxSearchResults      = 15
	maxStreamingPlatforms = 4

	minVotesPopular = 10
	minVotesRecent  = 5
)

// ContentService is the catalog collaborator: it fetches regional,
// date-filtered content from TMDB and keeps only titles with streaming
// availability in the configured watch region.
type ContentService struct {
	tmdb         *tmdb.Client
	lookup       catalog.Lookup
	imageBaseURL string
	region       string
}

// NewContentService creates a new ContentService.
func NewContentService(client *tmdb.Client, lookup catalog.Lookup, imageBaseURL, region string) *ContentService {
	return &ContentService{
		tmdb:         client,
		lookup:       lookup,
		imageBaseURL: imageBaseURL,
		region:       region,
	}
}

// FetchCatalog returns catalog content for the genre/language
// combination within the release-period window, filtered to titles
// with streaming availability. When contentType is "both", the movie
// and TV fetches run concurrently. A failed sub-fetch degrades to an
// empty slice; it never fails the whole request.
func (s *ContentService) FetchCatalog(ctx context.Context, languageCode, genre, contentType, releasePeriod string) ([]models.ContentItem, error) {
	dateFrom, dateTo := catalog.DateRange(releasePeriod)

	var movies, tvShows []models.ContentItem
	if contentType == models.ContentTypeBoth {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			movies = s.fetchMovies(ctx, languageCode, genre, dateFrom, dateTo)
		}()
		go func() {
			defer wg.Done()
			tvShows = s.fetchTVShows(ctx, languageCode, genre, dateFrom, dateTo)
		}()
		wg.Wait()
	} else if contentType == models.ContentTypeMovie {
		movies = s.fetchMovies(ctx, languageCode, genre, dateFrom, dateTo)
	} else if contentType == models.ContentTypeTV {
		tvShows = s.fetchTVShows(ctx, languageCode, genre, dateFrom, dateTo)
	}

	ott := s.withStreaming(ctx, movies, tvShows)

	// Newest and best-rated first
	sort.SliceStable(ott, func(i, j int) bool {
		if ott[i].ReleaseDate != ott[j].ReleaseDate {
			return ott[i].ReleaseDate > ott[j].ReleaseDate
		}
		return ott[i].Rating > ott[j].Rating
	})

	slog.Debug("catalog fetch completed",
		"genre", genre, "language", languageCode, "period", releasePeriod, "items", len(ott))
	return ott, nil
}

// GlobalSearch searches movies and TV shows by title in parallel and
// keeps only titles with streaming availability.
func (s *ContentService) GlobalSearch(ctx context.Context, query string) ([]models.ContentItem, error) {
	var movies, tvShows []models.ContentItem
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results, err := s.tmdb.SearchMovies(ctx, query)
		if err != nil {
			slog.Warn("movie search failed", "query", query, "error", err)
			return
		}
		for _, m := range results {
			if m.PosterPath == "" {
				continue
			}
			movies = append(movies, s.movieItem(m))
			if len(movies) == maxSearchResults {
				break
			}
		}
	}()
	go func() {
		defer wg.Done()
		results, err := s.tmdb.SearchTV(ctx, query)
		if err != nil {
			slog.Warn("tv search failed", "query", query, "error", err)
			return
		}
		for _, t := range results {
			if t.PosterPath == "" {
				continue
			}
			tvShows = append(tvShows, s.tvItem(t))
			if len(tvShows) == maxSearchResults {
				break
			}
		}
	}()
	wg.Wait()

	ott := s.withStreaming(ctx, movies, tvShows)

	sort.SliceStable(ott, func(i, j int) bool {
		if ott[i].Rating != ott[j].Rating {
			return ott[i].Rating > ott[j].Rating
		}
		return ott[i].ReleaseDate > ott[j].ReleaseDate
	})
	return ott, nil
}

func (s *ContentService) fetchMovies(ctx context.Context, languageCode, genre, dateFrom, dateTo string) []models.ContentItem {
	genreID := s.lookup.GenreID(genre, models.ContentTypeMovie)

	popular, err := s.tmdb.DiscoverMovies(ctx, tmdb.DiscoverParams{
		LanguageCode: languageCode,
		GenreID:      genreID,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
		SortBy:       "popularity.desc",
		MinVoteCount: minVotesPopular,
	})
	if err != nil {
		slog.Warn("movie discover failed", "genre", genre, "error", err)
		popular = nil
	}

	items := make([]models.ContentItem, 0, len(popular))
	seen := map[int]bool{}
	for _, m := range popular {
		items = append(items, s.movieItem(m))
		seen[m.ID] = true
	}

	// Thin result sets fall back to recent releases with a lower vote
	// floor.
	if len(items) < 10 {
		recent, err := s.tmdb.DiscoverMovies(ctx, tmdb.DiscoverParams{
			LanguageCode: languageCode,
			GenreID:      genreID,
			DateFrom:     dateFrom,
			DateTo:       dateTo,
			SortBy:       "release_date.desc",
			MinVoteCount: minVotesRecent,
		})
		if err != nil {
			slog.Warn("recent movie discover failed", "genre", genre, "error", err)
		}
		for _, m := range recent {
			if !seen[m.ID] {
				items = append(items, s.movieItem(m))
				seen[m.ID] = true
			}
		}
	}

	if len(items) > maxResultsPerType {
		items = items[:maxResultsPerType]
	}
	return items
}

func (s *ContentService) fetchTVShows(ctx context.Context, languageCode, genre, dateFrom, dateTo string) []models.ContentItem {
	genreID := s.lookup.GenreID(genre, models.ContentTypeTV)

	// Shows with episodes airing in the window first, then new shows
	// to fill out thin results.
	airing, err := s.tmdb.DiscoverTVByAirDate(ctx, tmdb.DiscoverParams{
		LanguageCode: languageCode,
		GenreID:      genreID,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
		SortBy:       "popularity.desc",
	})
	if err != nil {
		slog.Warn("tv discover failed", "genre", genre, "error", err)
		airing = nil
	}

	items := make([]models.ContentItem, 0, len(airing))
	seen := map[int]bool{}
	for _, t := range airing {
		items = append(items, s.tvItem(t))
		seen[t.ID] = true
	}

	if len(items) < 10 {
		fresh, err := s.tmdb.DiscoverTVByFirstAirDate(ctx, tmdb.DiscoverParams{
			LanguageCode: languageCode,
			GenreID:      genreID,
			DateFrom:     dateFrom,
			DateTo:       dateTo,
			SortBy:       "popularity.desc",
			MinVoteCount: minVotesRecent,
		})
		if err != nil {
			slog.Warn("new tv discover failed", "genre", genre, "error", err)
		}
		for _, t := range fresh {
			if !seen[t.ID] {
				items = append(items, s.tvItem(t))
				seen[t.ID] = true
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Popularity > items[j].Popularity
	})
	if len(items) > maxResultsPerType {
		items = items[:maxResultsPerType]
	}
	return items
}

// withStreaming resolves watch providers for each item and drops
// titles without any availability in the watch region.
func (s *ContentService) withStreaming(ctx context.Context, movies, tvShows []models.ContentItem) []models.ContentItem {
	var out []models.ContentItem
	if len(movies) > 0 {
		out = append(out, s.streamingAvailability(ctx, movies, models.ContentTypeMovie)...)
	}
	if len(tvShows) > 0 {
		out = append(out, s.streamingAvailability(ctx, tvShows, models.ContentTypeTV)...)
	}
	return out
}

// streamingAvailability fetches watch providers for all items
// concurrently. Each goroutine writes only its own slot, so no locking
// is needed; items whose lookup fails or that have no providers are
// dropped.
func (s *ContentService) streamingAvailability(ctx context.Context, items []models.ContentItem, contentType string) []models.ContentItem {
	results := make([]*models.StreamingInfo, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			providers, err := s.tmdb.WatchProviders(ctx, contentType, items[i].ID)
			if err != nil {
				slog.Warn("watch providers lookup failed",
					"content_id", items[i].ID, "content_type", contentType, "error", err)
				return
			}
			results[i] = s.regionStreaming(providers[s.region])
		}(i)
	}
	wg.Wait()

	var available []models.ContentItem
	for i, info := range results {
		if info == nil || len(info.AvailableOn) == 0 {
			continue
		}
		item := items[i]
		item.Streaming = info
		available = append(available, item)
	}
	return available
}

func (s *ContentService) regionStreaming(region tmdb.RegionProviders) *models.StreamingInfo {
	var platforms []models.StreamingPlatform
	for _, p := range region.Flatrate {
		if known, ok := s.lookup.Platform(p.ProviderID); ok {
			platforms = append(platforms, models.StreamingPlatform{
				Name:  known.Name,
				Logo:  p.LogoPath,
				Color: known.Color,
			})
		} else {
			platforms = append(platforms, models.StreamingPlatform{
				Name:  p.ProviderName,
				Logo:  p.LogoPath,
				Color: "#6B7280",
			})
		}
	}
	for _, p := range region.Rent {
		platforms = append(platforms, models.StreamingPlatform{
			Name:  p.ProviderName + " (Rent)",
			Logo:  p.LogoPath,
			Color: "#F59E0B",
		})
	}

	if len(platforms) > maxStreamingPlatforms {
		platforms = platforms[:maxStreamingPlatforms]
	}
	return &models.StreamingInfo{
		AvailableOn: platforms,
		Rent:        []models.StreamingPlatform{},
		Buy:         []models.StreamingPlatform{},
	}
}

func (s *ContentService) movieItem(m tmdb.MovieResult) models.ContentItem {
	item := models.ContentItem{
		ID:               m.ID,
		ContentType:      models.ContentTypeMovie,
		Title:            m.Title,
		Rating:           m.VoteAverage,
		Overview:         m.Overview,
		ReleaseDate:      m.ReleaseDate,
		GenreIDs:         m.GenreIDs,
		OriginalLanguage: m.OriginalLanguage,
		Popularity:       m.Popularity,
		VoteCount:        m.VoteCount,
	}
	if m.PosterPath != "" {
		item.Poster = s.imageBaseURL + m.PosterPath
	}
	if len(m.ReleaseDate) >= 4 {
		item.Year = m.ReleaseDate[:4]
	}
	return item
}

func (s *ContentService) tvItem(t tmdb.TVResult) models.ContentItem {
	item := models.ContentItem{
		ID:               t.ID,
		ContentType:      models.ContentTypeTV,
		Title:            t.Name,
		Rating:           t.VoteAverage,
		Overview:         t.Overview,
		ReleaseDate:      t.FirstAirDate,
		GenreIDs:         t.GenreIDs,
		OriginalLanguage: t.OriginalLanguage,
		Popularity:       t.Popularity,
		VoteCount:        t.VoteCount,
	}
	if t.PosterPath != "" {
		item.Poster = s.imageBaseURL + t.PosterPath
	}
	if len(t.FirstAirDate) >= 4 {
		item.Year = t.FirstAirDate[:4]
	}
	return item
}
