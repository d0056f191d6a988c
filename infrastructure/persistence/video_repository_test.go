package persistence

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"media-catalog/domain/model"
)

var videoRows = []string{
	"id", "source_type", "youtube_url", "embed_code", "upload_ref", "video_id",
	"title", "description", "author", "thumbnail_key", "published_at",
	"is_public", "is_restricted", "verification_message", "created_at", "updated_at",
}

func sampleRow(mockedAt time.Time) []driver.Value {
	return []driver.Value{
		"video-1", model.SourceYouTube, "https://youtu.be/dQw4w9WgXcQ", nil, nil, "dQw4w9WgXcQ",
		"Title", "Description", "Author", nil, nil,
		true, false, "no problems found", mockedAt, mockedAt,
	}
}

func TestVideoRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectExec("INSERT INTO videos").
		WillReturnResult(sqlmock.NewResult(0, 1))

	url := "https://youtu.be/dQw4w9WgXcQ"
	videoID := "dQw4w9WgXcQ"
	err = repository.Create(context.Background(), &model.Video{
		ID:         "video-1",
		SourceType: model.SourceYouTube,
		YoutubeURL: &url,
		VideoID:    &videoID,
		Title:      "Title",
		IsPublic:   true,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Create_UniqueViolationIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectExec("INSERT INTO videos").
		WillReturnError(&pq.Error{Code: "23505"})

	videoID := "dQw4w9WgXcQ"
	err = repository.Create(context.Background(), &model.Video{
		ID:         "video-1",
		SourceType: model.SourceYouTube,
		VideoID:    &videoID,
	})

	require.ErrorIs(t, err, model.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("(?s)SELECT .+ FROM videos WHERE id=").
		WithArgs("video-1").
		WillReturnRows(sqlmock.NewRows(videoRows).AddRow(sampleRow(now)...))

	video, err := repository.GetByID(context.Background(), "video-1")

	require.NoError(t, err)
	require.Equal(t, "video-1", video.ID)
	require.Equal(t, model.SourceYouTube, video.SourceType)
	require.NotNil(t, video.VideoID)
	require.Equal(t, "dQw4w9WgXcQ", *video.VideoID)
	require.Nil(t, video.EmbedCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectQuery("(?s)SELECT .+ FROM videos WHERE id=").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(videoRows))

	video, err := repository.GetByID(context.Background(), "missing")

	require.ErrorIs(t, err, model.ErrNotFound)
	require.Nil(t, video)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByVideoID_MissingIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectQuery("(?s)SELECT .+ FROM videos WHERE video_id=").
		WithArgs("dQw4w9WgXcQ").
		WillReturnRows(sqlmock.NewRows(videoRows))

	video, err := repository.GetByVideoID(context.Background(), "dQw4w9WgXcQ")

	require.NoError(t, err)
	require.Nil(t, video)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM videos`).
		WithArgs("%golang%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery("(?s)SELECT .+ FROM videos WHERE is_public = TRUE AND .+ ORDER BY created_at DESC").
		WithArgs("%golang%", 20, 0).
		WillReturnRows(sqlmock.NewRows(videoRows).AddRow(sampleRow(now)...))

	videos, total, err := repository.Search(context.Background(), "golang", 20, 0)

	require.NoError(t, err)
	require.Equal(t, 41, total)
	require.Len(t, videos, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_UpdateVerification(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectExec("UPDATE videos SET is_public=").
		WithArgs("video-1", false, true, "video not found on platform", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repository.UpdateVerification(context.Background(), "video-1", model.VerificationResult{
		IsPublic:     false,
		IsRestricted: true,
		Message:      "video not found on platform",
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Update_MissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectExec("UPDATE videos SET source_type=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repository.Update(context.Background(), &model.Video{ID: "missing", SourceType: model.SourceUpload})

	require.ErrorIs(t, err, model.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	mock.ExpectExec(`DELETE FROM videos WHERE id = ANY`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = repository.Delete(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Delete_EmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoRepository(db)

	err = repository.Delete(context.Background(), nil)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
