package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/service"
)

const defaultRecommendationLimit = 15

// RecommendationHandler handles the personalized recommendation
// endpoint.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// GetRecommendations returns personalized recommendations for a user.
// The engine never fails the request; degraded paths are reported via
// the algorithm tag.
// POST /api/v1/user/recommendations
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	var req models.RecommendationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "user_id is required"})
	}
	if req.Limit <= 0 || req.Limit > 50 {
		req.Limit = defaultRecommendationLimit
	}

	resp := h.svc.GetPersonalizedRecommendations(c.Context(), req.UserID, req.Limit)
	return c.JSON(resp)
}
