package dto

import "time"

// APIErrorResponse is the single error envelope every failed request gets.
type APIErrorResponse struct {
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Timestamp  time.Time    `json:"timestamp"`
	Details    []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
