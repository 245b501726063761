package chat

import "errors"

// ErrNotFound indicates the requested session does not exist in the local cache.
var ErrNotFound = errors.New("chat session not found")
