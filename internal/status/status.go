// Package status defines the error-code taxonomy delivered by the
// content-distribution service's asynchronous completions. A single code is
// the only error channel an operation has: OK is the success sentinel, any
// other value is a failure to be recorded, never thrown.
package status

import (
	"fmt"
	"net/http"
	"strings"
)

// Code is the status delivered by an operation's completion callback.
type Code uint32

const (
	// OK is the no-error sentinel. An operation that completes with OK
	// succeeded.
	OK Code = 0

	// NetworkError covers transport-level failures: the request never
	// produced an HTTP response.
	NetworkError Code = 10

	// Unauthorized covers rejected credentials (401/403).
	Unauthorized Code = 11

	// RateLimited maps the service's 429 responses.
	RateLimited Code = 12

	// NotFound covers missing games, mods, or sessions.
	NotFound Code = 13

	// Internal covers server-side failures (5xx) and responses the client
	// cannot classify.
	Internal Code = 14

	// DeadlineExceeded is delivered when an operation's own HTTP deadline
	// expires before a response arrives.
	DeadlineExceeded Code = 20
)

var codeNames = map[Code]string{
	OK:               "ok",
	NetworkError:     "network_error",
	Unauthorized:     "unauthorized",
	RateLimited:      "rate_limited",
	NotFound:         "not_found",
	Internal:         "internal",
	DeadlineExceeded: "deadline_exceeded",
}

// String returns the snake_case name used in suite files and logs.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", uint32(c))
}

// Parse converts a suite-file name (e.g. "ok", "unauthorized") into a Code.
func Parse(s string) (Code, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for code, name := range codeNames {
		if name == normalized {
			return code, nil
		}
	}
	return Internal, fmt.Errorf("unknown status code name %q", s)
}

// FromHTTP maps an HTTP response status to the service's code taxonomy.
func FromHTTP(httpStatus int) Code {
	switch {
	case httpStatus >= 200 && httpStatus < 300:
		return OK
	case httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden:
		return Unauthorized
	case httpStatus == http.StatusTooManyRequests:
		return RateLimited
	case httpStatus == http.StatusNotFound:
		return NotFound
	default:
		return Internal
	}
}
