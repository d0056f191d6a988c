package youtube

import (
	"context"
	"fmt"
	"time"

	"media-catalog/domain/model"
	"media-catalog/domain/repository"
	"media-catalog/infrastructure/logger"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client talks to the YouTube Data API in read-only API-key mode
type Client struct {
	service    *youtube.Service
	maxRetries uint64
}

// Config represents YouTube Data API client configuration
type Config struct {
	APIKey     string
	MaxRetries int
}

// NewClient creates a YouTube Data API client. A missing API key is a
// constructor-time configuration error, never a process-level failure.
func NewClient(ctx context.Context, config *Config) (repository.IVideoPlatform, error) {
	if config == nil || config.APIKey == "" {
		return nil, &model.ConfigurationError{Key: "youtube.apiKey", Reason: "API key is required"}
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	retries := config.MaxRetries
	if retries <= 0 {
		retries = 2
	}
	return &Client{service: service, maxRetries: uint64(retries)}, nil
}

// GetVideoMetadata resolves snippet data for a video id.
// Returns (nil, nil) when the platform reports no matching item.
func (c *Client) GetVideoMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	response, err := c.listWithRetry(ctx, videoID, []string{"snippet"})
	if err != nil {
		return nil, fmt.Errorf("failed to get video metadata: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, nil
	}

	snippet := response.Items[0].Snippet
	publishedAt, _ := time.Parse(time.RFC3339, snippet.PublishedAt)

	return &model.VideoMetadata{
		Title:        snippet.Title,
		Description:  snippet.Description,
		Author:       snippet.ChannelTitle,
		PublishedAt:  publishedAt,
		ThumbnailURL: pickThumbnailURL(snippet.Thumbnails),
	}, nil
}

// CheckAvailability returns privacy status and region restriction for a video id.
// Found=false with nil error means the platform has no such item.
func (c *Client) CheckAvailability(ctx context.Context, videoID string) (*model.VideoAvailability, error) {
	response, err := c.listWithRetry(ctx, videoID, []string{"status", "contentDetails"})
	if err != nil {
		return nil, fmt.Errorf("failed to check video availability: %w", err)
	}
	if len(response.Items) == 0 {
		return &model.VideoAvailability{Found: false}, nil
	}

	item := response.Items[0]
	availability := &model.VideoAvailability{Found: true}
	if item.Status != nil {
		availability.IsPublic = item.Status.PrivacyStatus == "public"
	}
	if item.ContentDetails != nil && item.ContentDetails.RegionRestriction != nil {
		availability.RegionRestricted = true
	}
	return availability, nil
}

// listWithRetry performs Videos.List with bounded exponential backoff so a
// flapping platform degrades to the caller's soft-failure path instead of
// stalling the batch.
func (c *Client) listWithRetry(ctx context.Context, videoID string, parts []string) (*youtube.VideoListResponse, error) {
	var response *youtube.VideoListResponse
	operation := func() error {
		res, err := c.service.Videos.List(parts).Id(videoID).Context(ctx).Do()
		if err != nil {
			return err
		}
		response = res
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)
	if err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		logger.GetLogger().WithField("error", err).WithField("videoId", videoID).
			WithField("wait", wait.String()).Warn("YouTube API call failed, retrying")
	}); err != nil {
		return nil, err
	}
	return response, nil
}

// pickThumbnailURL prefers default -> high -> maxres, first non-empty wins.
func pickThumbnailURL(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.Default != nil && thumbnails.Default.Url != "" {
		return thumbnails.Default.Url
	}
	if thumbnails.High != nil && thumbnails.High.Url != "" {
		return thumbnails.High.Url
	}
	if thumbnails.Maxres != nil && thumbnails.Maxres.Url != "" {
		return thumbnails.Maxres.Url
	}
	return ""
}
