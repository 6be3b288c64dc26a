package dto

// ErrorResponse represents a standardized error response for the API.
// RequestID matches the X-Request-ID response header.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
