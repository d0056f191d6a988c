package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"media-catalog/domain/model"
	"media-catalog/domain/repository"

	"github.com/redis/go-redis/v9"
)

// MetadataCache caches resolved platform metadata in redis, keyed by the
// external video id. A nil client disables caching entirely.
type MetadataCache struct {
	client *redis.Client
}

func NewMetadataCache(client *redis.Client) repository.IMetadataCache {
	return &MetadataCache{client: client}
}

func key(videoID string) string { return "video:metadata:" + videoID }

func (c *MetadataCache) Get(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, key(videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", videoID, err)
	}
	var meta model.VideoMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", videoID, err)
	}
	return &meta, nil
}

func (c *MetadataCache) Set(ctx context.Context, videoID string, meta *model.VideoMetadata, ttl time.Duration) error {
	if c.client == nil || meta == nil {
		return nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", videoID, err)
	}
	if err := c.client.Set(ctx, key(videoID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", videoID, err)
	}
	return nil
}
