package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			content_id INTEGER NOT NULL,
			content_type VARCHAR(10) NOT NULL,
			title VARCHAR(500) DEFAULT '',
			action VARCHAR(20) NOT NULL,
			rating DOUBLE PRECISION,
			genres TEXT[] DEFAULT '{}',
			language VARCHAR(50) DEFAULT '',
			actors TEXT[] DEFAULT '{}',
			directors TEXT[] DEFAULT '{}',
			release_date VARCHAR(10) DEFAULT '',
			overview TEXT DEFAULT '',
			popularity DOUBLE PRECISION DEFAULT 0,
			event_time TIMESTAMP NOT NULL DEFAULT NOW(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, content_id, content_type)
		)`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id TEXT PRIMARY KEY,
			preferred_genres TEXT[] DEFAULT '{}',
			preferred_languages TEXT[] DEFAULT '{}',
			preferred_content_types TEXT[] DEFAULT '{}',
			liked_actors TEXT[] DEFAULT '{}',
			liked_directors TEXT[] DEFAULT '{}',
			total_interactions INTEGER DEFAULT 0,
			total_liked INTEGER DEFAULT 0,
			total_disliked INTEGER DEFAULT 0,
			total_watchlisted INTEGER DEFAULT 0,
			total_watched INTEGER DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			last_activity TIMESTAMP
		)`,
		// Index for newest-first listing and trim-to-200
		`CREATE INDEX IF NOT EXISTS idx_user_interactions_user_created
			ON user_interactions(user_id, created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
