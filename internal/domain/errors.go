package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for setup and validation
var (
	// ErrMissingAPIKey indicates no API key is configured for the selected provider
	ErrMissingAPIKey = errors.New("API key is not configured")

	// ErrUnknownProvider indicates the provider name is not supported
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrEmptyQuery indicates the search query has no terms
	ErrEmptyQuery = errors.New("query must contain at least one term")

	// ErrInvalidLimit indicates a result limit below 1
	ErrInvalidLimit = errors.New("limit must be at least 1")

	// ErrInvalidDirectory indicates the save directory cannot be created or written
	ErrInvalidDirectory = errors.New("save directory is not usable")

	// ErrAllDownloadsFailed indicates a run where results were found but nothing was saved
	ErrAllDownloadsFailed = errors.New("every download failed")
)

// SearchError reports a search request that failed at the transport or HTTP layer.
// StatusCode is 0 for transport failures.
type SearchError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s search failed: unexpected HTTP status %d %s",
			e.Provider, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// ResponseFormatError reports a search response that did not have the expected shape.
type ResponseFormatError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s returned an unexpected response: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s returned an unexpected response: %s", e.Provider, e.Reason)
}

func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}
