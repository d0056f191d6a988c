package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-catalog/domain/dto"
	"media-catalog/domain/model"
	"media-catalog/domain/repository"
	"media-catalog/infrastructure/logger"
	"media-catalog/infrastructure/pubsub"

	"github.com/google/uuid"
)

// IThumbnailMaterializer streams a remote thumbnail into durable storage and
// returns the stored-asset key.
type IThumbnailMaterializer interface {
	Materialize(ctx context.Context, remoteURL, videoID string) (string, error)
}

// IIngestUsecase defines the ingestion orchestrator operations
type IIngestUsecase interface {
	CreateVideo(ctx context.Context, req *dto.CreateVideoRequest) (*model.Video, error)
	UpdateVideo(ctx context.Context, id string, req *dto.UpdateVideoRequest) (*model.Video, error)
	DeleteVideos(ctx context.Context, ids []string) error
}

// IngestUsecase composes classification, extraction, dedup, metadata
// resolution and thumbnail materialization into the persisted record.
// Every collaborator except the video repository is optional: a missing
// platform client or store degrades the pipeline to "keep user-supplied
// values", never to a failure.
type IngestUsecase struct {
	videoRepo    repository.IVideo
	platform     repository.IVideoPlatform
	materializer IThumbnailMaterializer
	metaCache    repository.IMetadataCache
	events       pubsub.IVideoEvents
	metadataTTL  time.Duration
}

func NewIngestUsecase(
	videoRepo repository.IVideo,
	platform repository.IVideoPlatform,
	materializer IThumbnailMaterializer,
	metaCache repository.IMetadataCache,
	events pubsub.IVideoEvents,
) IIngestUsecase {
	return &IngestUsecase{
		videoRepo:    videoRepo,
		platform:     platform,
		materializer: materializer,
		metaCache:    metaCache,
		events:       events,
		metadataTTL:  10 * time.Minute,
	}
}

// classify checks that the declared source type carries its required field.
// It reports every missing field, not just the first, and runs before any
// network or store I/O.
func classify(input *dto.VideoSourceInput) error {
	var fields []model.FieldError
	switch input.SourceType {
	case model.SourceYouTube:
		if input.YoutubeURL == "" {
			fields = append(fields, model.FieldError{Field: "youtube_url", Reason: "required for YouTube source"})
		}
	case model.SourceEmbed:
		if input.EmbedCode == "" {
			fields = append(fields, model.FieldError{Field: "embed_code", Reason: "required for embed source"})
		}
	case model.SourceUpload:
		if input.UploadRef == "" {
			fields = append(fields, model.FieldError{Field: "upload_ref", Reason: "required for upload source"})
		}
	default:
		fields = append(fields, model.FieldError{Field: "source_type", Reason: "must be one of youtube, embed, upload"})
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

// CreateVideo runs the full ingestion chain for a new submission. Duplicate
// external ids resolve to the existing record: first writer wins, the second
// submission is an idempotent read.
func (u *IngestUsecase) CreateVideo(ctx context.Context, req *dto.CreateVideoRequest) (*model.Video, error) {
	if err := classify(&req.VideoSourceInput); err != nil {
		return nil, err
	}

	video := &model.Video{
		ID:          uuid.NewString(),
		SourceType:  req.SourceType,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		IsPublic:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if req.IsPublic != nil {
		video.IsPublic = *req.IsPublic
	}
	applySource(video, &req.VideoSourceInput)

	if video.SourceType == model.SourceYouTube {
		externalID, ok := ExtractVideoID(*video.YoutubeURL)
		if ok {
			existing, err := u.videoRepo.GetByVideoID(ctx, externalID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				logger.GetLogger().WithField("videoId", externalID).Warn("Video with this external id already exists")
				return existing, nil
			}
			video.VideoID = &externalID
			u.enrich(ctx, video, externalID)
		}
		// Extraction failure keeps the raw link; no metadata fetch is attempted.
	}

	if err := u.videoRepo.Create(ctx, video); err != nil {
		// A concurrent create won the unique index; return the winner's row.
		if errors.Is(err, model.ErrConflict) && video.VideoID != nil {
			existing, lookupErr := u.videoRepo.GetByVideoID(ctx, *video.VideoID)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("create video: %w", err)
	}

	if u.events != nil {
		u.events.PublishIngested(ctx, video)
	}
	return video, nil
}

// UpdateVideo re-runs the chain for an edited record. When the source URL is
// unchanged the whole resolution sub-chain is skipped, so a no-op edit makes
// zero external calls.
func (u *IngestUsecase) UpdateVideo(ctx context.Context, id string, req *dto.UpdateVideoRequest) (*model.Video, error) {
	if err := classify(&req.VideoSourceInput); err != nil {
		return nil, err
	}

	video, err := u.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		video.Title = req.Title
	}
	if req.Description != "" {
		video.Description = req.Description
	}
	if req.Author != "" {
		video.Author = req.Author
	}

	urlUnchanged := req.SourceType == model.SourceYouTube &&
		video.SourceType == model.SourceYouTube &&
		video.YoutubeURL != nil && *video.YoutubeURL == req.YoutubeURL

	video.SourceType = req.SourceType
	applySource(video, &req.VideoSourceInput)

	if video.SourceType == model.SourceYouTube && !urlUnchanged {
		video.VideoID = nil
		externalID, ok := ExtractVideoID(req.YoutubeURL)
		if ok {
			existing, err := u.videoRepo.GetByVideoID(ctx, externalID)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != video.ID {
				logger.GetLogger().WithField("videoId", externalID).Warn("Video with this external id already exists")
				return existing, nil
			}
			video.VideoID = &externalID
			u.enrich(ctx, video, externalID)
		}
	}
	if video.SourceType != model.SourceYouTube {
		video.VideoID = nil
	}

	if err := u.videoRepo.Update(ctx, video); err != nil {
		if errors.Is(err, model.ErrConflict) && video.VideoID != nil {
			existing, lookupErr := u.videoRepo.GetByVideoID(ctx, *video.VideoID)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("update video %s: %w", id, err)
	}
	return video, nil
}

// DeleteVideos removes records by id, fire-and-forget.
func (u *IngestUsecase) DeleteVideos(ctx context.Context, ids []string) error {
	return u.videoRepo.Delete(ctx, ids)
}

// applySource sets the field selected by the source type and clears the rest.
func applySource(video *model.Video, input *dto.VideoSourceInput) {
	video.YoutubeURL, video.EmbedCode, video.UploadRef = nil, nil, nil
	switch input.SourceType {
	case model.SourceYouTube:
		url := input.YoutubeURL
		video.YoutubeURL = &url
	case model.SourceEmbed:
		code := input.EmbedCode
		video.EmbedCode = &code
	case model.SourceUpload:
		ref := input.UploadRef
		video.UploadRef = &ref
	}
}

// enrich fills empty fields from platform metadata and materializes the
// thumbnail. Both steps are soft: any failure keeps the user-supplied values
// and the record proceeds to persistence.
func (u *IngestUsecase) enrich(ctx context.Context, video *model.Video, externalID string) {
	meta := u.resolveMetadata(ctx, externalID)
	if meta == nil {
		return
	}

	// User-supplied values win; fetched values only fill blanks.
	if video.Title == "" {
		video.Title = meta.Title
	}
	if video.Description == "" {
		video.Description = meta.Description
	}
	if video.Author == "" {
		video.Author = meta.Author
	}
	if video.PublishedAt == nil && !meta.PublishedAt.IsZero() {
		publishedAt := meta.PublishedAt
		video.PublishedAt = &publishedAt
	}

	if meta.ThumbnailURL == "" || u.materializer == nil {
		return
	}
	key, err := u.materializer.Materialize(ctx, meta.ThumbnailURL, externalID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", externalID).
			Warn("Thumbnail materialization failed, keeping record without thumbnail")
		return
	}
	video.ThumbnailKey = &key
}

// resolveMetadata is cache-aside over the platform metadata endpoint.
// A nil result means the record stays unresolved; it never aborts ingestion.
func (u *IngestUsecase) resolveMetadata(ctx context.Context, externalID string) *model.VideoMetadata {
	if u.metaCache != nil {
		if cached, err := u.metaCache.Get(ctx, externalID); err == nil && cached != nil {
			return cached
		}
	}
	if u.platform == nil {
		return nil
	}

	meta, err := u.platform.GetVideoMetadata(ctx, externalID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", externalID).
			Warn("Metadata resolution failed, proceeding with raw record")
		return nil
	}
	if meta == nil {
		logger.GetLogger().WithField("videoId", externalID).Warn("No metadata found for video")
		return nil
	}

	if u.metaCache != nil {
		_ = u.metaCache.Set(ctx, externalID, meta, u.metadataTTL)
	}
	return meta
}
