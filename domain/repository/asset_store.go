package repository

import (
	"context"
	"io"
)

// IAssetStore is the narrow durable-store contract for binary assets.
// Put streams the body and returns an opaque stored-asset key.
type IAssetStore interface {
	Put(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
}
