package travel

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup that returned zero matches. Wrap it with context
// and match it with errors.Is.
var ErrNotFound = errors.New("not found")

// UpstreamHTTPError is a non-2xx response from a remote API.
type UpstreamHTTPError struct {
	Service    string
	StatusCode int
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// UpstreamParseError is a malformed payload from a remote API.
type UpstreamParseError struct {
	Service string
	Err     error
}

func (e *UpstreamParseError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Service, e.Err)
}

func (e *UpstreamParseError) Unwrap() error { return e.Err }
