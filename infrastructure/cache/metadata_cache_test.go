package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"media-catalog/domain/model"
)

// A nil redis client disables caching: every call is a quiet no-op.
func TestMetadataCache_NilClientIsNoop(t *testing.T) {
	metadataCache := NewMetadataCache(nil)

	meta, err := metadataCache.Get(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Nil(t, meta)

	err = metadataCache.Set(context.Background(), "dQw4w9WgXcQ", &model.VideoMetadata{Title: "x"}, time.Minute)
	require.NoError(t, err)
}
