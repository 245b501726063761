package api

import "errors"

var (
	// ErrBackendUnavailable indicates the LocalMate backend is unreachable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrNotFound indicates the plan or item does not exist server-side.
	ErrNotFound = errors.New("not found")

	// ErrRequestFailed indicates the backend rejected the request with a
	// non-2xx status other than 404.
	ErrRequestFailed = errors.New("backend request failed")
)
