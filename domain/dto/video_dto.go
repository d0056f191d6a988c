package dto

// VideoSourceInput is the discriminated-union payload for create/update.
// Exactly one of the source fields is meaningful for the declared source type;
// the boundary validation rejects payloads whose shape does not match it.
type VideoSourceInput struct {
	SourceType string `json:"source_type" binding:"required,oneof=youtube embed upload"`
	YoutubeURL string `json:"youtube_url,omitempty"`
	EmbedCode  string `json:"embed_code,omitempty"`
	UploadRef  string `json:"upload_ref,omitempty"`
}

// CreateVideoRequest represents a create submission
type CreateVideoRequest struct {
	VideoSourceInput
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

// UpdateVideoRequest represents an update submission
type UpdateVideoRequest struct {
	VideoSourceInput
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
}

// VerifyVideoRef identifies one previously ingested record to re-verify
type VerifyVideoRef struct {
	ID         string  `json:"id" binding:"required"`
	SourceType string  `json:"source_type" binding:"required,oneof=youtube embed upload"`
	VideoID    *string `json:"video_id"`
}

// VerifyVideosRequest represents a batch verify submission
type VerifyVideosRequest struct {
	Videos []VerifyVideoRef `json:"videos" binding:"required,min=1,dive"`
}

// VideoSearchRequest represents the public search query parameters
type VideoSearchRequest struct {
	Page        int    `form:"page,default=1" binding:"min=1"`
	SearchQuery string `form:"search_query"`
}

// DeleteVideosRequest represents a bulk delete submission
type DeleteVideosRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
