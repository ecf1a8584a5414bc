package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
)

// maxEventsPerUser caps stored interaction history; the oldest entries
// beyond it are evicted on every write.
const maxEventsPerUser = 200

// InteractionRepository persists user interaction events, keyed by
// (user_id, content_id, content_type).
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Upsert inserts the event, replacing any prior event for the same
// (user_id, content_id, content_type). The replaced event becomes the
// newest entry. History is then trimmed to the most recent 200 events.
func (r *InteractionRepository) Upsert(ctx context.Context, e models.InteractionEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_interactions
			(user_id, content_id, content_type, title, action, rating,
			 genres, language, actors, directors,
			 release_date, overview, popularity, event_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (user_id, content_id, content_type) DO UPDATE SET
			title = EXCLUDED.title,
			action = EXCLUDED.action,
			rating = EXCLUDED.rating,
			genres = EXCLUDED.genres,
			language = EXCLUDED.language,
			actors = EXCLUDED.actors,
			directors = EXCLUDED.directors,
			release_date = EXCLUDED.release_date,
			overview = EXCLUDED.overview,
			popularity = EXCLUDED.popularity,
			event_time = EXCLUDED.event_time,
			created_at = NOW()
	`, e.UserID, e.ContentID, e.ContentType, e.Title, e.Action, e.Rating,
		pq.Array(e.Genres), e.Language, pq.Array(e.Actors), pq.Array(e.Directors),
		e.ReleaseDate, e.Overview, e.Popularity, e.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to upsert interaction: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM user_interactions
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM user_interactions
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)
	`, e.UserID, maxEventsPerUser)
	if err != nil {
		return fmt.Errorf("failed to trim interactions: %w", err)
	}
	return nil
}

// List returns a user's events newest first, optionally filtered by
// action.
func (r *InteractionRepository) List(ctx context.Context, userID, action string) ([]models.InteractionEvent, error) {
	query := `
		SELECT user_id, content_id, content_type, title, action, rating,
			genres, language, actors, directors,
			release_date, overview, popularity, event_time
		FROM user_interactions
		WHERE user_id = $1`
	args := []any{userID}
	if action != "" {
		query += ` AND action = $2`
		args = append(args, action)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var events []models.InteractionEvent
	for rows.Next() {
		var e models.InteractionEvent
		if err := rows.Scan(&e.UserID, &e.ContentID, &e.ContentType, &e.Title,
			&e.Action, &e.Rating,
			pq.Array(&e.Genres), &e.Language, pq.Array(&e.Actors), pq.Array(&e.Directors),
			&e.ReleaseDate, &e.Overview, &e.Popularity, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Remove deletes the event for (user_id, content_id, content_type) and
// reports how many rows were removed.
func (r *InteractionRepository) Remove(ctx context.Context, userID string, contentID int, contentType string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM user_interactions
		WHERE user_id = $1 AND content_id = $2 AND content_type = $3
	`, userID, contentID, contentType)
	if err != nil {
		return 0, fmt.Errorf("failed to remove interaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
