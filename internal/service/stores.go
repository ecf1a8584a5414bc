package service

import (
	"context"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

// InteractionStore is the durable keyed collection of interaction
// events, one entry per (user_id, content_id, content_type).
type InteractionStore interface {
	// Upsert replaces any event with the same key, making the event the
	// newest entry, and evicts history beyond the retention cap.
	Upsert(ctx context.Context, event models.InteractionEvent) error
	// List returns a user's events newest first, optionally filtered by
	// action.
	List(ctx context.Context, userID, action string) ([]models.InteractionEvent, error)
	// Remove deletes one keyed event and reports how many were removed.
	Remove(ctx context.Context, userID string, contentID int, contentType string) (int, error)
}

// ProfileStore is the durable keyed collection of derived profiles.
// Get returns sql.ErrNoRows when no profile exists.
type ProfileStore interface {
	Upsert(ctx context.Context, profile models.UserProfile) error
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	All(ctx context.Context) ([]models.UserProfile, error)
	Delete(ctx context.Context, userID string) error
}

// CatalogFetcher is the external catalog collaborator: regional,
// date-filtered content lookup with streaming availability applied.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, languageCode, genre, contentType, releasePeriod string) ([]models.ContentItem, error)
}
