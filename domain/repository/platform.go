package repository

import (
	"context"

	"media-catalog/domain/model"
)

// IVideoPlatform defines the external platform lookups the pipeline consumes
type IVideoPlatform interface {
	// GetVideoMetadata resolves snippet data for an external id.
	// A nil result with nil error means the platform returned no items.
	GetVideoMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error)
	// CheckAvailability returns privacy/region status for an external id.
	CheckAvailability(ctx context.Context, videoID string) (*model.VideoAvailability, error)
}
