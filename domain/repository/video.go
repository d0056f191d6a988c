package repository

import (
	"context"

	"media-catalog/domain/model"
)

// IVideo defines persistence operations for video records
type IVideo interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	// GetByVideoID is the dedup lookup keyed on the unique external id.
	GetByVideoID(ctx context.Context, videoID string) (*model.Video, error)
	// Search returns public records matching the query, newest first.
	Search(ctx context.Context, query string, limit, offset int) ([]model.Video, int, error)
	// UpdateVerification writes the verification-owned fields only.
	UpdateVerification(ctx context.Context, id string, result model.VerificationResult) error
	Delete(ctx context.Context, ids []string) error
}
