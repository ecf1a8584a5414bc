package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/catalog"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/service"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DiscoveryHandler handles catalog discovery and search endpoints.
type DiscoveryHandler struct {
	content *service.ContentService
	lookup  catalog.Lookup
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(content *service.ContentService, lookup catalog.Lookup) *DiscoveryHandler {
	return &DiscoveryHandler{content: content, lookup: lookup}
}

// Health returns service health status.
// GET /health
func (h *DiscoveryHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-recommender",
	})
}

// Discover returns streaming-available catalog content. Explicit
// filters win; otherwise they are extracted from the prompt.
// POST /api/v1/discover
func (h *DiscoveryHandler) Discover(c fiber.Ctx) error {
	var req models.DiscoverRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	genre, language, contentType := req.Genre, req.Language, req.ContentType
	period := req.ReleasePeriod
	if genre == "" || language == "" || contentType == "" {
		genre, language, contentType = h.lookup.ExtractFilters(req.Prompt)
	}
	if period == "" {
		period = catalog.DefaultPeriod
	}

	code, ok := h.lookup.LanguageCode(language)
	if !ok {
		code = "hi"
	}

	items, err := h.content.FetchCatalog(c.Context(), code, genre, contentType, period)
	if err != nil {
		slog.Error("discover failed", "genre", genre, "language", language, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to fetch content"})
	}

	resp := fiber.Map{
		"content": items,
		"total":   len(items),
		"filters": fiber.Map{
			"genre":          genre,
			"language":       language,
			"content_type":   contentType,
			"release_period": period,
		},
	}
	if len(items) == 0 {
		resp["message"] = "No OTT content found. Try different filters."
	}
	return c.JSON(resp)
}

// Search performs a global title search across movies and TV shows.
// POST /api/v1/search
func (h *DiscoveryHandler) Search(c fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	query := strings.TrimSpace(req.Query)
	if len(query) < 2 {
		return c.JSON(fiber.Map{
			"content": []models.ContentItem{},
			"total":   0,
			"message": "Query too short. Please enter at least 2 characters.",
		})
	}

	items, err := h.content.GlobalSearch(c.Context(), query)
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}

	resp := fiber.Map{
		"content": items,
		"total":   len(items),
		"query":   query,
	}
	if len(items) == 0 {
		resp["message"] = "No OTT content found for search. Try a different search term."
	}
	return c.JSON(resp)
}
