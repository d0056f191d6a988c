package pubsub

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"
	"media-catalog/domain/model"
	"media-catalog/infrastructure/logger"
)

const (
	TopicVideoIngested = "video.ingested"
	TopicVideoVerified = "video.verified"
)

// IVideoEvents publishes catalog lifecycle events
type IVideoEvents interface {
	PublishIngested(ctx context.Context, video *model.Video)
	PublishVerified(ctx context.Context, videoID string, result model.VerificationResult)
}

// VideoEvents publishes to Google Pub/Sub. A nil client turns every publish
// into a no-op so the pipeline works without a configured project.
type VideoEvents struct {
	client *pubsub.Client
}

func NewVideoEvents(client *pubsub.Client) IVideoEvents {
	return &VideoEvents{client: client}
}

func (e *VideoEvents) PublishIngested(ctx context.Context, video *model.Video) {
	e.publish(ctx, TopicVideoIngested, map[string]interface{}{
		"id":          video.ID,
		"source_type": video.SourceType,
		"video_id":    video.VideoID,
	})
}

func (e *VideoEvents) PublishVerified(ctx context.Context, videoID string, result model.VerificationResult) {
	e.publish(ctx, TopicVideoVerified, map[string]interface{}{
		"id":            videoID,
		"is_public":     result.IsPublic,
		"is_restricted": result.IsRestricted,
		"status":        model.CompositeStatus(result.IsPublic, result.IsRestricted),
	})
}

// publish is fire-and-forget: event delivery never affects pipeline outcome.
func (e *VideoEvents) publish(ctx context.Context, topicName string, payload map[string]interface{}) {
	if e.client == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while encoding event payload")
		return
	}

	topic := e.client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("topic", topicName).Warn("Pub/Sub topic lookup failed")
		return
	}
	if !exists {
		if topic, err = e.client.CreateTopic(ctx, topicName); err != nil {
			logger.GetLogger().WithField("error", err).WithField("topic", topicName).Warn("Pub/Sub topic creation failed")
			return
		}
	}

	if _, err := topic.Publish(ctx, &pubsub.Message{Data: data}).Get(ctx); err != nil {
		logger.GetLogger().WithField("error", err).WithField("topic", topicName).Warn("Pub/Sub publish failed")
	}
}
