package service

import (
	"errors"
	"net/http"
)

var (
	ErrMissingCredentials = errors.New("Missing Instagram API credentials. Please check environment variables.")
	ErrUsernameRequired   = errors.New("Username is required")
	ErrUsernameInvalid    = errors.New("Invalid username")
	ErrUpstream           = errors.New("Failed to fetch data from Instagram API")
	ErrHistoryUnavailable = errors.New("Failed to fetch follower history")
)

// ErrorMap 业务错误到 HTTP 状态码
var ErrorMap = map[error]int{
	ErrMissingCredentials: http.StatusInternalServerError,
	ErrUsernameRequired:   http.StatusBadRequest,
	ErrUsernameInvalid:    http.StatusBadRequest,
	ErrUpstream:           http.StatusInternalServerError,
	ErrHistoryUnavailable: http.StatusInternalServerError,
}

// DetailError 业务错误附带具体原因，原因作为 details 返回给调用方
type DetailError struct {
	Kind  error
	Cause error
}

func (e *DetailError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *DetailError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func withDetails(kind, cause error) error {
	return &DetailError{Kind: kind, Cause: cause}
}

// Resolve 返回错误对应的 sentinel、状态码与 details
func Resolve(err error) (kind error, status int, details string) {
	var detailErr *DetailError
	if errors.As(err, &detailErr) && detailErr.Cause != nil {
		details = detailErr.Cause.Error()
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return sentinel, code, details
		}
	}
	return nil, http.StatusInternalServerError, details
}
