package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"media-catalog/domain/dto"
	"media-catalog/domain/model"
	"media-catalog/domain/repository"
	"media-catalog/infrastructure/logger"
	"media-catalog/infrastructure/pubsub"

	"golang.org/x/sync/errgroup"
)

// Verification outcome messages.
const (
	msgNotPlatformVideo = "not a YouTube video or missing id"
	msgNotFound         = "video not found on platform"
	msgFetchFailed      = "platform API fetch failed"
	msgHealthy          = "no problems found"
	msgNotPublic        = "video not public"
	msgRegionRestricted = "video is region restricted"
)

// IVerifyUsecase defines the verification batch runner
type IVerifyUsecase interface {
	VerifyVideos(ctx context.Context, refs []dto.VerifyVideoRef) (map[string]model.VerificationResult, error)
}

// VerifyUsecase re-checks previously ingested videos against the platform's
// availability endpoint with a bounded worker pool. Every item is processed
// and written back independently; one failing item never blocks the rest.
type VerifyUsecase struct {
	videoRepo   repository.IVideo
	platform    repository.IVideoPlatform
	events      pubsub.IVideoEvents
	broadcaster func(videoID string, result model.VerificationResult)
	concurrency int
	timeout     time.Duration
}

func NewVerifyUsecase(videoRepo repository.IVideo, platform repository.IVideoPlatform, concurrency int, timeout time.Duration) *VerifyUsecase {
	if concurrency <= 0 {
		concurrency = 4
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &VerifyUsecase{
		videoRepo:   videoRepo,
		platform:    platform,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// WithEvents enables lifecycle event publication (fluent)
func (u *VerifyUsecase) WithEvents(events pubsub.IVideoEvents) *VerifyUsecase {
	u.events = events
	return u
}

// WithBroadcaster attaches a per-result callback, e.g. an SSE hub (fluent)
func (u *VerifyUsecase) WithBroadcaster(fn func(videoID string, result model.VerificationResult)) *VerifyUsecase {
	u.broadcaster = fn
	return u
}

// VerifyVideos derives and persists a verification result for every ref in
// the batch. Cancellation or the batch timeout stops new platform calls but
// in-flight items complete and persist; accumulated results are returned
// rather than discarded.
func (u *VerifyUsecase) VerifyVideos(ctx context.Context, refs []dto.VerifyVideoRef) (map[string]model.VerificationResult, error) {
	// batchCtx only gates dispatch: once it expires or the caller cancels,
	// no further platform call starts.
	batchCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	// Started items run detached from the caller under their own deadline,
	// so cancellation never stamps a transient fetch failure over a
	// record's previous authoritative status.
	detachedCtx := context.WithoutCancel(ctx)

	results := make(map[string]model.VerificationResult, len(refs))
	var mu sync.Mutex

	g := &errgroup.Group{}
	g.SetLimit(u.concurrency)

	for _, ref := range refs {
		if batchCtx.Err() != nil {
			mu.Lock()
			done := len(results)
			mu.Unlock()
			logger.GetLogger().WithField("remaining", len(refs)-done).
				Warn("Verification batch interrupted, returning partial results")
			break
		}
		ref := ref
		g.Go(func() error {
			// Items still queued behind the pool gate when the batch is
			// cut off are omitted from the results, not marked failed.
			if batchCtx.Err() != nil {
				return nil
			}

			callCtx, cancelCall := context.WithTimeout(detachedCtx, u.timeout)
			result := u.verifyOne(callCtx, ref)
			cancelCall()

			if err := u.videoRepo.UpdateVerification(detachedCtx, ref.ID, result); err != nil {
				logger.GetLogger().WithField("error", err).WithField("id", ref.ID).
					Error("Failed to persist verification result")
			}

			mu.Lock()
			results[ref.ID] = result
			mu.Unlock()

			if u.broadcaster != nil {
				u.broadcaster(ref.ID, result)
			}
			if u.events != nil {
				u.events.PublishVerified(detachedCtx, ref.ID, result)
			}
			return nil
		})
	}

	_ = g.Wait()
	return results, nil
}

// verifyOne derives the tri-state result for one record. Records that are not
// platform-linked get a fixed deterministic status without any network call.
func (u *VerifyUsecase) verifyOne(ctx context.Context, ref dto.VerifyVideoRef) model.VerificationResult {
	if ref.SourceType != model.SourceYouTube || ref.VideoID == nil || *ref.VideoID == "" {
		return model.VerificationResult{IsPublic: false, IsRestricted: true, Message: msgNotPlatformVideo}
	}

	if u.platform == nil {
		return model.VerificationResult{IsPublic: false, IsRestricted: true, Message: msgFetchFailed}
	}

	availability, err := u.platform.CheckAvailability(ctx, *ref.VideoID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", *ref.VideoID).
			Warn("Availability check failed")
		return model.VerificationResult{IsPublic: false, IsRestricted: true, Message: msgFetchFailed}
	}
	if !availability.Found {
		return model.VerificationResult{IsPublic: false, IsRestricted: true, Message: msgNotFound}
	}

	if availability.IsPublic && !availability.RegionRestricted {
		return model.VerificationResult{IsPublic: true, IsRestricted: false, Message: msgHealthy}
	}

	var problems []string
	if !availability.IsPublic {
		problems = append(problems, msgNotPublic)
	}
	if availability.RegionRestricted {
		problems = append(problems, msgRegionRestricted)
	}
	return model.VerificationResult{
		IsPublic:     availability.IsPublic,
		IsRestricted: availability.RegionRestricted,
		Message:      "problems found: " + strings.Join(problems, " and "),
	}
}
