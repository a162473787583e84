package sdkclient

import (
	"errors"
	"time"
)

// DefaultHTTPTimeout bounds a single HTTP exchange. It is deliberately
// shorter than the runner's step deadline so a dead service surfaces as a
// DeadlineExceeded completion rather than a runner timeout.
const DefaultHTTPTimeout = 10 * time.Second

// Options is the opaque configuration blob a session is initialized with.
type Options struct {
	// ServiceURL is the base URL of the content-distribution service.
	ServiceURL string
	// APIKey authenticates every request.
	APIKey string
	// GameID scopes the session to one title.
	GameID int64
	// Environment selects the service environment, "live" or "test".
	Environment string
	// HTTPTimeout bounds a single HTTP exchange. Zero means
	// DefaultHTTPTimeout.
	HTTPTimeout time.Duration
}

// withDefaults returns a copy with unset fields filled in.
func (o Options) withDefaults() Options {
	if o.Environment == "" {
		o.Environment = "test"
	}
	if o.HTTPTimeout <= 0 {
		o.HTTPTimeout = DefaultHTTPTimeout
	}
	return o
}

// validate checks the fields the client cannot default.
func (o Options) validate() error {
	if o.ServiceURL == "" {
		return errors.New("sdkclient: ServiceURL is required")
	}
	return nil
}
