package usecase

import (
	"context"

	"media-catalog/domain/dto"
	"media-catalog/domain/model"
	"media-catalog/domain/repository"
)

const searchPageSize = 20

// ICatalogUsecase defines the public read operations
type ICatalogUsecase interface {
	SearchVideos(ctx context.Context, req *dto.VideoSearchRequest) (*dto.VideoSearchResponse, error)
	GetVideo(ctx context.Context, id string) (*model.Video, error)
}

type CatalogUsecase struct {
	videoRepo repository.IVideo
}

func NewCatalogUsecase(videoRepo repository.IVideo) ICatalogUsecase {
	return &CatalogUsecase{videoRepo: videoRepo}
}

// SearchVideos returns public records matching the query, newest first.
func (u *CatalogUsecase) SearchVideos(ctx context.Context, req *dto.VideoSearchRequest) (*dto.VideoSearchResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * searchPageSize

	videos, total, err := u.videoRepo.Search(ctx, req.SearchQuery, searchPageSize, offset)
	if err != nil {
		return nil, err
	}

	totalPages := (total + searchPageSize - 1) / searchPageSize
	if videos == nil {
		videos = []model.Video{}
	}
	return &dto.VideoSearchResponse{
		Page:       page,
		TotalPages: totalPages,
		Videos:     videos,
	}, nil
}

func (u *CatalogUsecase) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	return u.videoRepo.GetByID(ctx, id)
}
