package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"media-catalog/domain/model"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const videoColumns = `id, source_type, youtube_url, embed_code, upload_ref, video_id,
	title, description, author, thumbnail_key, published_at,
	is_public, is_restricted, verification_message, created_at, updated_at`

// VideoRepository implements video persistence using PostgreSQL
type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository { return &VideoRepository{db: db} }

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	now := time.Now().UTC()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now

	q := `INSERT INTO videos (` + videoColumns + `)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`
	_, err := r.db.ExecContext(ctx, q,
		video.ID, video.SourceType,
		nullStr(video.YoutubeURL), nullStr(video.EmbedCode), nullStr(video.UploadRef), nullStr(video.VideoID),
		video.Title, video.Description, video.Author,
		nullStr(video.ThumbnailKey), nullTime(video.PublishedAt),
		video.IsPublic, video.IsRestricted, video.VerificationMessage,
		video.CreatedAt, video.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("insert video %s: %w", video.ID, model.ErrConflict)
		}
		return fmt.Errorf("insert video %s: %w", video.ID, err)
	}
	return nil
}

func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	video.UpdatedAt = time.Now().UTC()
	q := `UPDATE videos SET source_type=$2, youtube_url=$3, embed_code=$4, upload_ref=$5,
            video_id=$6, title=$7, description=$8, author=$9, thumbnail_key=$10,
            published_at=$11, updated_at=$12
          WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q,
		video.ID, video.SourceType,
		nullStr(video.YoutubeURL), nullStr(video.EmbedCode), nullStr(video.UploadRef), nullStr(video.VideoID),
		video.Title, video.Description, video.Author,
		nullStr(video.ThumbnailKey), nullTime(video.PublishedAt),
		video.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("update video %s: %w", video.ID, model.ErrConflict)
		}
		return fmt.Errorf("update video %s: %w", video.ID, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("update video %s: %w", video.ID, model.ErrNotFound)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id=$1`, id)
	video, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("video %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", id, err)
	}
	return video, nil
}

// GetByVideoID is the dedup lookup; a missing row is (nil, nil), not an error.
func (r *VideoRepository) GetByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE video_id=$1`, videoID)
	video, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video by external id %s: %w", videoID, err)
	}
	return video, nil
}

func (r *VideoRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.Video, int, error) {
	where := `WHERE is_public = TRUE`
	args := []interface{}{}
	if query != "" {
		where += ` AND (title ILIKE $1 OR description ILIKE $1)`
		args = append(args, "%"+query+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	q := fmt.Sprintf(`SELECT `+videoColumns+` FROM videos %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search videos: %w", err)
	}
	defer rows.Close()

	var list []model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan video: %w", err)
		}
		list = append(list, *video)
	}
	return list, total, rows.Err()
}

// UpdateVerification writes the verification-owned fields and nothing else.
func (r *VideoRepository) UpdateVerification(ctx context.Context, id string, result model.VerificationResult) error {
	q := `UPDATE videos SET is_public=$2, is_restricted=$3, verification_message=$4, updated_at=$5 WHERE id=$1`
	_, err := r.db.ExecContext(ctx, q, id, result.IsPublic, result.IsRestricted, result.Message, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update verification for %s: %w", id, err)
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("delete videos: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVideo(row rowScanner) (*model.Video, error) {
	var v model.Video
	var youtubeURL, embedCode, uploadRef, videoID, thumbnailKey sql.NullString
	var publishedAt sql.NullTime
	err := row.Scan(
		&v.ID, &v.SourceType, &youtubeURL, &embedCode, &uploadRef, &videoID,
		&v.Title, &v.Description, &v.Author, &thumbnailKey, &publishedAt,
		&v.IsPublic, &v.IsRestricted, &v.VerificationMessage, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.YoutubeURL = strPtr(youtubeURL)
	v.EmbedCode = strPtr(embedCode)
	v.UploadRef = strPtr(uploadRef)
	v.VideoID = strPtr(videoID)
	v.ThumbnailKey = strPtr(thumbnailKey)
	if publishedAt.Valid {
		t := publishedAt.Time
		v.PublishedAt = &t
	}
	return &v, nil
}

func nullStr(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil || t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func strPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
