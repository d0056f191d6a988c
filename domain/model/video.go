package model

import "time"

// Source types a video record can declare.
const (
	SourceYouTube = "youtube"
	SourceEmbed   = "embed"
	SourceUpload  = "upload"
)

// Video represents a catalog video record
type Video struct {
	ID                  string     `json:"id"`
	SourceType          string     `json:"source_type"`
	YoutubeURL          *string    `json:"youtube_url,omitempty"`
	EmbedCode           *string    `json:"embed_code,omitempty"`
	UploadRef           *string    `json:"upload_ref,omitempty"`
	VideoID             *string    `json:"video_id,omitempty"` // YouTube id, unique when present
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Author              string     `json:"author"`
	ThumbnailKey        *string    `json:"thumbnail_key,omitempty"`
	PublishedAt         *time.Time `json:"published_at,omitempty"`
	IsPublic            bool       `json:"is_public"`
	IsRestricted        bool       `json:"is_restricted"`
	VerificationMessage string     `json:"verification_message"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// VideoMetadata is the snippet-level data resolved from the platform
type VideoMetadata struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

// VideoAvailability is the status-level data used by verification
type VideoAvailability struct {
	Found            bool `json:"found"`
	IsPublic         bool `json:"is_public"`
	RegionRestricted bool `json:"region_restricted"`
}

// VerificationResult is what the batch runner derives and persists per record
type VerificationResult struct {
	IsPublic     bool   `json:"isPublic"`
	IsRestricted bool   `json:"isRestricted"`
	Message      string `json:"message"`
}

// Composite status values derived from the persisted verification flags.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CompositeStatus derives the tri-state indicator from the verification flags.
func CompositeStatus(isPublic, isRestricted bool) string {
	switch {
	case isPublic && !isRestricted:
		return StatusHealthy
	case !isPublic && isRestricted:
		return StatusUnhealthy
	default:
		return StatusDegraded
	}
}
