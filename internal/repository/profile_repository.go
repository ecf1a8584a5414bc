package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

// ProfileRepository persists derived user profiles, keyed by user_id.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert writes a rebuilt profile. created_at is only set on first
// insert; rebuilds keep the original value.
func (r *ProfileRepository) Upsert(ctx context.Context, p models.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles
			(user_id, preferred_genres, preferred_languages, preferred_content_types,
			 liked_actors, liked_directors,
			 total_interactions, total_liked, total_disliked, total_watchlisted, total_watched,
			 created_at, updated_at, last_activity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_genres = EXCLUDED.preferred_genres,
			preferred_languages = EXCLUDED.preferred_languages,
			preferred_content_types = EXCLUDED.preferred_content_types,
			liked_actors = EXCLUDED.liked_actors,
			liked_directors = EXCLUDED.liked_directors,
			total_interactions = EXCLUDED.total_interactions,
			total_liked = EXCLUDED.total_liked,
			total_disliked = EXCLUDED.total_disliked,
			total_watchlisted = EXCLUDED.total_watchlisted,
			total_watched = EXCLUDED.total_watched,
			updated_at = EXCLUDED.updated_at,
			last_activity = EXCLUDED.last_activity
	`, p.UserID, pq.Array(p.PreferredGenres), pq.Array(p.PreferredLanguages),
		pq.Array(p.PreferredContentTypes), pq.Array(p.LikedActors), pq.Array(p.LikedDirectors),
		p.TotalInteractions, p.TotalLiked, p.TotalDisliked, p.TotalWatchlisted, p.TotalWatched,
		p.CreatedAt, p.UpdatedAt, p.LastActivity)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// Get returns one user's profile, or sql.ErrNoRows if none exists.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, preferred_genres, preferred_languages, preferred_content_types,
			liked_actors, liked_directors,
			total_interactions, total_liked, total_disliked, total_watchlisted, total_watched,
			created_at, updated_at, last_activity
		FROM user_profiles WHERE user_id = $1
	`, userID).Scan(
		&p.UserID, pq.Array(&p.PreferredGenres), pq.Array(&p.PreferredLanguages),
		pq.Array(&p.PreferredContentTypes), pq.Array(&p.LikedActors), pq.Array(&p.LikedDirectors),
		&p.TotalInteractions, &p.TotalLiked, &p.TotalDisliked, &p.TotalWatchlisted, &p.TotalWatched,
		&p.CreatedAt, &p.UpdatedAt, &p.LastActivity,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// All returns every stored profile in stable creation order, for
// similar-user scans.
func (r *ProfileRepository) All(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, preferred_genres, preferred_languages, preferred_content_types,
			liked_actors, liked_directors,
			total_interactions, total_liked, total_disliked, total_watchlisted, total_watched,
			created_at, updated_at, last_activity
		FROM user_profiles
		ORDER BY created_at, user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		var p models.UserProfile
		if err := rows.Scan(
			&p.UserID, pq.Array(&p.PreferredGenres), pq.Array(&p.PreferredLanguages),
			pq.Array(&p.PreferredContentTypes), pq.Array(&p.LikedActors), pq.Array(&p.LikedDirectors),
			&p.TotalInteractions, &p.TotalLiked, &p.TotalDisliked, &p.TotalWatchlisted, &p.TotalWatched,
			&p.CreatedAt, &p.UpdatedAt, &p.LastActivity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Delete removes a user's profile. Rebuilds call this when the user's
// event set has become empty.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is the driver's no-rows sentinel.
func IsNotFound(err error) bool {
	return err == sql.ErrNoRows
}
