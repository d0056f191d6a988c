package http

import (
	"errors"
	"net/http"

	"media-catalog/domain/dto"
	"media-catalog/domain/model"
	"media-catalog/infrastructure/logger"
	"media-catalog/usecase"

	"github.com/gin-gonic/gin"
)

// IVideoHandler defines the video HTTP handlers
type IVideoHandler interface {
	CreateVideo(ctx *gin.Context)
	UpdateVideo(ctx *gin.Context)
	DeleteVideos(ctx *gin.Context)
	VerifyVideos(ctx *gin.Context)
	SearchVideos(ctx *gin.Context)
	GetVideo(ctx *gin.Context)
}

type VideoHandler struct {
	ingestUsecase  usecase.IIngestUsecase
	verifyUsecase  usecase.IVerifyUsecase
	catalogUsecase usecase.ICatalogUsecase
}

func NewVideoHandler(
	ingestUsecase usecase.IIngestUsecase,
	verifyUsecase usecase.IVerifyUsecase,
	catalogUsecase usecase.ICatalogUsecase,
) IVideoHandler {
	return &VideoHandler{
		ingestUsecase:  ingestUsecase,
		verifyUsecase:  verifyUsecase,
		catalogUsecase: catalogUsecase,
	}
}

// CreateVideo handles POST /api/videos
func (h *VideoHandler) CreateVideo(ctx *gin.Context) {
	var req dto.CreateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.ingestUsecase.CreateVideo(ctx.Request.Context(), &req)
	if err != nil {
		h.writeIngestError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": video})
}

// UpdateVideo handles PATCH /api/videos/:id
func (h *VideoHandler) UpdateVideo(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "video id is required"})
		return
	}

	var req dto.UpdateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.ingestUsecase.UpdateVideo(ctx.Request.Context(), id, &req)
	if err != nil {
		h.writeIngestError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": video})
}

// DeleteVideos handles DELETE /api/videos
func (h *VideoHandler) DeleteVideos(ctx *gin.Context) {
	var req dto.DeleteVideosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ingestUsecase.DeleteVideos(ctx.Request.Context(), req.IDs); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while deleting videos")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete videos"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyVideos handles POST /api/videos/verify
func (h *VideoHandler) VerifyVideos(ctx *gin.Context) {
	var req dto.VerifyVideosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.verifyUsecase.VerifyVideos(ctx.Request.Context(), req.Videos)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.VerifyVideosResponse{Results: results})
}

// SearchVideos handles GET /videos
func (h *VideoHandler) SearchVideos(ctx *gin.Context) {
	var req dto.VideoSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.catalogUsecase.SearchVideos(ctx.Request.Context(), &req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while searching videos")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search videos"})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// GetVideo handles GET /videos/:id
func (h *VideoHandler) GetVideo(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "video id is required"})
		return
	}

	video, err := h.catalogUsecase.GetVideo(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error while fetching video")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch video"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"video": video})
}

// writeIngestError maps the ingestion error taxonomy onto HTTP responses.
// Only validation failures are user-visible hard errors.
func (h *VideoHandler) writeIngestError(ctx *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validationErr.Fields,
		})
		return
	}
	if errors.Is(err, model.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	logger.GetLogger().WithField("error", err).Error("Ingestion failed")
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion failed", "message": err.Error()})
}
