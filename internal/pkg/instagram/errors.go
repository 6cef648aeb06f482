package instagram

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingCredentials = errors.New("missing Instagram API credentials")
	ErrInvalidResponse    = errors.New("invalid response from Instagram API")
)

// UpstreamError Graph API 返回的错误信封
type UpstreamError struct {
	StatusCode int
	Message    string
	Type       string
	Code       int
	FBTraceID  string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("graph api returned status %d", e.StatusCode)
}
