package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"media-catalog/domain/dto"
	"media-catalog/domain/model"
	httpHandler "media-catalog/interfaces/http"
)

type MockIngestUsecase struct {
	mock.Mock
}

func (m *MockIngestUsecase) CreateVideo(ctx context.Context, req *dto.CreateVideoRequest) (*model.Video, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockIngestUsecase) UpdateVideo(ctx context.Context, id string, req *dto.UpdateVideoRequest) (*model.Video, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockIngestUsecase) DeleteVideos(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockVerifyUsecase struct {
	mock.Mock
}

func (m *MockVerifyUsecase) VerifyVideos(ctx context.Context, refs []dto.VerifyVideoRef) (map[string]model.VerificationResult, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.VerificationResult), args.Error(1)
}

type MockCatalogUsecase struct {
	mock.Mock
}

func (m *MockCatalogUsecase) SearchVideos(ctx context.Context, req *dto.VideoSearchRequest) (*dto.VideoSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoSearchResponse), args.Error(1)
}

func (m *MockCatalogUsecase) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func setupRouter(ingest *MockIngestUsecase, verify *MockVerifyUsecase, catalog *MockCatalogUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := httpHandler.NewVideoHandler(ingest, verify, catalog)
	router := gin.New()
	router.GET("/videos", handler.SearchVideos)
	router.GET("/videos/:id", handler.GetVideo)
	router.POST("/api/videos", handler.CreateVideo)
	router.PATCH("/api/videos/:id", handler.UpdateVideo)
	router.DELETE("/api/videos", handler.DeleteVideos)
	router.POST("/api/videos/verify", handler.VerifyVideos)
	return router
}

func TestVideoHandler_CreateVideo_Created(t *testing.T) {
	mockIngest := new(MockIngestUsecase)
	router := setupRouter(mockIngest, new(MockVerifyUsecase), new(MockCatalogUsecase))

	mockIngest.On("CreateVideo", mock.Anything, mock.AnythingOfType("*dto.CreateVideoRequest")).
		Return(&model.Video{ID: "video-1", SourceType: model.SourceYouTube}, nil).
		Once()

	body := `{"source_type":"youtube","youtube_url":"https://youtu.be/dQw4w9WgXcQ"}`
	req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	mockIngest.AssertExpectations(t)
}

func TestVideoHandler_CreateVideo_UnknownSourceTypeRejectedAtBinding(t *testing.T) {
	mockIngest := new(MockIngestUsecase)
	router := setupRouter(mockIngest, new(MockVerifyUsecase), new(MockCatalogUsecase))

	body := `{"source_type":"vimeo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	mockIngest.AssertNotCalled(t, "CreateVideo", mock.Anything, mock.Anything)
}

func TestVideoHandler_CreateVideo_ValidationErrorListsFields(t *testing.T) {
	mockIngest := new(MockIngestUsecase)
	router := setupRouter(mockIngest, new(MockVerifyUsecase), new(MockCatalogUsecase))

	mockIngest.On("CreateVideo", mock.Anything, mock.Anything).
		Return(nil, &model.ValidationError{Fields: []model.FieldError{
			{Field: "youtube_url", Reason: "required for YouTube source"},
		}}).
		Once()

	body := `{"source_type":"youtube"}`
	req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Fields, 1)
	assert.Equal(t, "youtube_url", response.Fields[0].Field)
}

func TestVideoHandler_VerifyVideos_EmptyBatchRejected(t *testing.T) {
	mockVerify := new(MockVerifyUsecase)
	router := setupRouter(new(MockIngestUsecase), mockVerify, new(MockCatalogUsecase))

	body := `{"videos":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/videos/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	mockVerify.AssertNotCalled(t, "VerifyVideos", mock.Anything, mock.Anything)
}

func TestVideoHandler_VerifyVideos_ReturnsResultsPerRecord(t *testing.T) {
	mockVerify := new(MockVerifyUsecase)
	router := setupRouter(new(MockIngestUsecase), mockVerify, new(MockCatalogUsecase))

	mockVerify.On("VerifyVideos", mock.Anything, mock.Anything).
		Return(map[string]model.VerificationResult{
			"rec-1": {IsPublic: true, IsRestricted: false, Message: "no problems found"},
		}, nil).
		Once()

	body := `{"videos":[{"id":"rec-1","source_type":"youtube","video_id":"dQw4w9WgXcQ"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/videos/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.VerifyVideosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Contains(t, response.Results, "rec-1")
	assert.Equal(t, "no problems found", response.Results["rec-1"].Message)
	mockVerify.AssertExpectations(t)
}

func TestVideoHandler_GetVideo_NotFound(t *testing.T) {
	mockCatalog := new(MockCatalogUsecase)
	router := setupRouter(new(MockIngestUsecase), new(MockVerifyUsecase), mockCatalog)

	mockCatalog.On("GetVideo", mock.Anything, "missing").
		Return(nil, model.ErrNotFound).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/videos/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	mockCatalog.AssertExpectations(t)
}

func TestVideoHandler_SearchVideos(t *testing.T) {
	mockCatalog := new(MockCatalogUsecase)
	router := setupRouter(new(MockIngestUsecase), new(MockVerifyUsecase), mockCatalog)

	mockCatalog.On("SearchVideos", mock.Anything, mock.AnythingOfType("*dto.VideoSearchRequest")).
		Return(&dto.VideoSearchResponse{
			Page:       1,
			TotalPages: 1,
			Videos:     []model.Video{{ID: "video-1", Title: "Go Concurrency"}},
		}, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/videos?search_query=go", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.VideoSearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Page)
	require.Len(t, response.Videos, 1)
	assert.Equal(t, "Go Concurrency", response.Videos[0].Title)
	mockCatalog.AssertExpectations(t)
}

func TestVideoHandler_DeleteVideos(t *testing.T) {
	mockIngest := new(MockIngestUsecase)
	router := setupRouter(mockIngest, new(MockVerifyUsecase), new(MockCatalogUsecase))

	mockIngest.On("DeleteVideos", mock.Anything, []string{"a", "b"}).
		Return(nil).
		Once()

	body := `{"ids":["a","b"]}`
	req := httptest.NewRequest(http.MethodDelete, "/api/videos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	mockIngest.AssertExpectations(t)
}
