package repository

import (
	"context"
	"time"

	"media-catalog/domain/model"
)

// IMetadataCache caches resolved platform metadata keyed by external id.
// A nil metadata with nil error is a cache miss.
type IMetadataCache interface {
	Get(ctx context.Context, videoID string) (*model.VideoMetadata, error)
	Set(ctx context.Context, videoID string, meta *model.VideoMetadata, ttl time.Duration) error
}
