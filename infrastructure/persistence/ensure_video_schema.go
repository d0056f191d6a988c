package persistence

import (
	"database/sql"
	"fmt"

	"media-catalog/infrastructure/logger"
)

// EnsureVideoSchema creates the videos table if it does not exist.
// The partial unique index on video_id enforces external-id uniqueness at the
// store level, so concurrent duplicate creates fail atomically instead of
// racing the application-level dedup check.
func EnsureVideoSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS videos (
        id UUID PRIMARY KEY,
        source_type TEXT NOT NULL CHECK (source_type IN ('youtube','embed','upload')),
        youtube_url TEXT,
        embed_code TEXT,
        upload_ref TEXT,
        video_id TEXT,
        title TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        author TEXT NOT NULL DEFAULT '',
        thumbnail_key TEXT,
        published_at TIMESTAMPTZ,
        is_public BOOLEAN NOT NULL DEFAULT TRUE,
        is_restricted BOOLEAN NOT NULL DEFAULT FALSE,
        verification_message TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create videos table: %w", err)
	}

	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_videos_video_id ON videos(video_id) WHERE video_id IS NOT NULL`); err != nil {
		return fmt.Errorf("create idx_videos_video_id: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_videos_created_at")
	}

	return nil
}
