// Package domain defines domain-level errors for the artscan feature.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyImage indicates that the uploaded image buffer contained no bytes.
var ErrEmptyImage = errors.New("image data is empty")

// ErrScanPanicked indicates that a scan step panicked and was recovered.
var ErrScanPanicked = errors.New("scan step panicked")

// UpstreamStatusError is returned by upstream adapters when the remote service
// answered with a non-2xx HTTP status.
type UpstreamStatusError struct {
	Service    string // display name of the upstream, e.g. "Groq"
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s http %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s http %d: %s", e.Service, e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err wraps an upstream 401 response.
func IsUnauthorized(err error) bool {
	var se *UpstreamStatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}
