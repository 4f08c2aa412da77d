package handler

import "daily-digest/publish"

// ArchiveResponse represents the API response for the archive listing
type ArchiveResponse struct {
	Success bool                   `json:"success"`
	Data    []publish.ArchiveEntry `json:"data"`
	Count   int                    `json:"count"`
	Latest  string                 `json:"latest,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
