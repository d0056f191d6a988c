package thumbnail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"media-catalog/domain/repository"
)

// Materializer streams a remote thumbnail into the durable asset store.
// The step is idempotent per external id: the derived key is stable, so a
// retried materialization overwrites the same object.
type Materializer struct {
	store      repository.IAssetStore
	httpClient *http.Client
}

func NewMaterializer(store repository.IAssetStore) *Materializer {
	return &Materializer{
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Materialize fetches remoteURL and stores it under a collision-resistant
// name derived from the external video id plus the original extension.
// The body is handed to the store as a stream, never buffered whole.
func (m *Materializer) Materialize(ctx context.Context, remoteURL, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return "", fmt.Errorf("build thumbnail request: %w", err)
	}

	res, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch thumbnail: unexpected status %d", res.StatusCode)
	}

	filename := fmt.Sprintf("youtube-thumbnail-%s%s", videoID, extensionOf(remoteURL))

	key, err := m.store.Put(ctx, res.Body, filename, res.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("store thumbnail: %w", err)
	}
	return key, nil
}

// extensionOf takes the extension from the URL path only, so query strings
// never leak into the stored object key.
func extensionOf(remoteURL string) string {
	if u, err := url.Parse(remoteURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	return ".jpg"
}
