package dto

import "media-catalog/domain/model"

// Res is the generic response envelope
type Res struct {
	ResponseCode    string      `json:"response_code"`
	ResponseMessage string      `json:"response_message"`
	Data            interface{} `json:"data,omitempty"`
}

// ValidationErrorResponse carries the structured missing-field list
type ValidationErrorResponse struct {
	Error  string             `json:"error"`
	Fields []model.FieldError `json:"fields"`
}

// VerifyVideosResponse maps record id to its verification outcome
type VerifyVideosResponse struct {
	Results map[string]model.VerificationResult `json:"results"`
}

// VideoSearchResponse is the paginated public listing
type VideoSearchResponse struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Videos     []model.Video `json:"videos"`
}
