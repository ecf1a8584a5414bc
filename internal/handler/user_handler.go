package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/service"
)

// UserHandler handles interaction recording and profile endpoints.
type UserHandler struct {
	prefs *service.PreferenceService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(prefs *service.PreferenceService) *UserHandler {
	return &UserHandler{prefs: prefs}
}

// RecordInteraction records a like/dislike/watchlist/watched event.
// POST /api/v1/user/interaction
func (h *UserHandler) RecordInteraction(c fiber.Ctx) error {
	var event models.InteractionEvent
	if err := c.Bind().JSON(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if err := h.prefs.RecordInteraction(c.Context(), event); err != nil {
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to record interaction", "user_id", event.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to record interaction"})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Recorded " + event.Action + " for '" + event.Title + "'",
		"user_id": event.UserID,
		"content_data": fiber.Map{
			"id":       event.ContentID,
			"title":    event.Title,
			"genres":   event.Genres,
			"language": event.Language,
		},
	})
}

// GetProfile returns the derived profile plus interaction stats.
// GET /api/v1/user/:id/profile
func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID := c.Params("id")

	profile, err := h.prefs.GetProfile(c.Context(), userID)
	if err != nil {
		slog.Error("failed to get profile", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve profile"})
	}

	interactions, err := h.prefs.GetInteractions(c.Context(), userID, "")
	if err != nil {
		slog.Error("failed to get interactions", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve interactions"})
	}

	var liked, watchlisted, watched []models.InteractionEvent
	genreDistribution := map[string]int{}
	for _, e := range interactions {
		switch e.Action {
		case models.ActionLiked:
			liked = append(liked, e)
			for _, g := range e.Genres {
				genreDistribution[g]++
			}
		case models.ActionWatchlisted:
			watchlisted = append(watchlisted, e)
		case models.ActionWatched:
			watched = append(watched, e)
		}
	}

	recent := interactions
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentLiked := liked
	if len(recentLiked) > 5 {
		recentLiked = recentLiked[:5]
	}

	return c.JSON(fiber.Map{
		"profile": profile,
		"stats": fiber.Map{
			"total_interactions": len(interactions),
			"liked_content":      len(liked),
			"watchlist_items":    len(watchlisted),
			"watched_items":      len(watched),
			"genre_distribution": genreDistribution,
		},
		"recent_activity": recent,
		"liked_content":   recentLiked,
	})
}

// GetInteractions returns a user's events, optionally action-filtered.
// GET /api/v1/user/:id/interactions?action=liked
func (h *UserHandler) GetInteractions(c fiber.Ctx) error {
	userID := c.Params("id")
	action := c.Query("action")
	if action != "" && !models.ValidActions[action] {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid action: " + action})
	}

	interactions, err := h.prefs.GetInteractions(c.Context(), userID, action)
	if err != nil {
		slog.Error("failed to get interactions", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve interactions"})
	}

	return c.JSON(fiber.Map{
		"interactions": interactions,
		"total_count":  len(interactions),
	})
}

// GetLiked returns everything the user liked.
// GET /api/v1/user/:id/liked
func (h *UserHandler) GetLiked(c fiber.Ctx) error {
	userID := c.Params("id")
	liked, err := h.prefs.GetInteractions(c.Context(), userID, models.ActionLiked)
	if err != nil {
		slog.Error("failed to get liked content", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve liked content"})
	}
	return c.JSON(fiber.Map{
		"liked_content": liked,
		"total_count":   len(liked),
	})
}

// GetWatchlist returns the user's watchlist.
// GET /api/v1/user/:id/watchlist
func (h *UserHandler) GetWatchlist(c fiber.Ctx) error {
	userID := c.Params("id")
	watchlist, err := h.prefs.GetInteractions(c.Context(), userID, models.ActionWatchlisted)
	if err != nil {
		slog.Error("failed to get watchlist", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve watchlist"})
	}
	return c.JSON(fiber.Map{
		"watchlist":   watchlist,
		"total_count": len(watchlist),
	})
}

// RemoveInteraction deletes one keyed interaction.
// DELETE /api/v1/user/:id/interaction/:contentID?content_type=movie
func (h *UserHandler) RemoveInteraction(c fiber.Ctx) error {
	userID := c.Params("id")
	contentID := fiber.Params[int](c, "contentID")
	contentType := c.Query("content_type", models.ContentTypeMovie)

	if contentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid content ID"})
	}

	removed, err := h.prefs.RemoveInteraction(c.Context(), userID, contentID, contentType)
	if err != nil {
		slog.Error("failed to remove interaction", "user_id", userID, "content_id", contentID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to remove interaction"})
	}

	if removed == 0 {
		return c.JSON(fiber.Map{
			"status":  "not_found",
			"message": "No interaction found to remove",
		})
	}
	return c.JSON(fiber.Map{
		"status":        "success",
		"message":       "Removed interaction",
		"removed_count": removed,
	})
}

// isValidationError distinguishes caller mistakes from storage
// failures. Validation messages are produced before any storage call.
func isValidationError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "invalid") || strings.HasSuffix(msg, "is required")
}
