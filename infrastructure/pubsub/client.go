package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// NewPubSub creates a Pub/Sub client for the configured project.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("pubsub project ID not configured")
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return client, nil
}
