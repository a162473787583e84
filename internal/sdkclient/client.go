// Package sdkclient is the harness's client for the remote
// content-distribution service. Every operation is asynchronous: the call
// returns an OperationHandle immediately and delivers its outcome exactly
// once, as a status.Code, through the completion callback supplied by the
// caller. The callback runs on the client's own goroutine, never on the
// caller's.
package sdkclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/status"
	"resty.dev/v3"
)

// CompletionFunc delivers the result of one asynchronous operation. The
// client invokes it exactly once per issued operation.
type CompletionFunc func(code status.Code)

// OperationHandle identifies a single outstanding asynchronous call.
type OperationHandle struct {
	ID   uuid.UUID
	Kind string
}

// String implements fmt.Stringer for log output.
func (h OperationHandle) String() string {
	return fmt.Sprintf("%s/%s", h.Kind, h.ID)
}

// Client talks to the content-distribution service.
type Client struct {
	http        *resty.Client
	opts        Options
	initialized atomic.Bool
}

// New creates a client for the service described by opts.
func New(opts Options) (*Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	httpClient := resty.New().
		SetBaseURL(opts.ServiceURL).
		SetTimeout(opts.HTTPTimeout).
		SetHeader("Accept", "application/json")
	if opts.APIKey != "" {
		httpClient.SetHeader("X-Api-Key", opts.APIKey)
	}

	return &Client{http: httpClient, opts: opts}, nil
}

// HTTPClient exposes the underlying resty client for commands that probe
// raw endpoints on the same service.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// Initialized reports whether a session has been opened and not yet shut down.
func (c *Client) Initialized() bool {
	return c.initialized.Load()
}

// Close releases the client's transport resources.
func (c *Client) Close() {
	c.http.Close()
}

// InitializeAsync opens a service session for the configured game and
// environment.
func (c *Client) InitializeAsync(ctx context.Context, complete CompletionFunc) OperationHandle {
	return c.dispatch(ctx, "initialize", complete, func(ctx context.Context) status.Code {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(map[string]any{
				"game_id":     c.opts.GameID,
				"environment": c.opts.Environment,
			}).
			Post("/v1/sessions")
		if err != nil {
			return transportCode(err)
		}
		code := status.FromHTTP(resp.StatusCode())
		if code == status.OK {
			c.initialized.Store(true)
		}
		return code
	})
}

// FetchUpdatesAsync retrieves the mod catalogue for a game.
func (c *Client) FetchUpdatesAsync(ctx context.Context, gameID int64, complete CompletionFunc) OperationHandle {
	return c.dispatch(ctx, "fetch_updates", complete, func(ctx context.Context) status.Code {
		resp, err := c.http.R().
			SetContext(ctx).
			Get(fmt.Sprintf("/v1/games/%d/mods", gameID))
		if err != nil {
			return transportCode(err)
		}
		return status.FromHTTP(resp.StatusCode())
	})
}

// SubscribeAsync subscribes the session's user to a mod.
func (c *Client) SubscribeAsync(ctx context.Context, modID int64, complete CompletionFunc) OperationHandle {
	return c.dispatch(ctx, "subscribe", complete, func(ctx context.Context) status.Code {
		resp, err := c.http.R().
			SetContext(ctx).
			Post(fmt.Sprintf("/v1/mods/%d/subscriptions", modID))
		if err != nil {
			return transportCode(err)
		}
		return status.FromHTTP(resp.StatusCode())
	})
}

// ShutdownAsync closes the current service session.
func (c *Client) ShutdownAsync(ctx context.Context, complete CompletionFunc) OperationHandle {
	return c.dispatch(ctx, "shutdown", complete, func(ctx context.Context) status.Code {
		resp, err := c.http.R().
			SetContext(ctx).
			Delete("/v1/sessions/current")
		if err != nil {
			return transportCode(err)
		}
		code := status.FromHTTP(resp.StatusCode())
		if code == status.OK {
			c.initialized.Store(false)
		}
		return code
	})
}

// transportCode classifies a request error that produced no HTTP response.
func transportCode(err error) status.Code {
	if errors.Is(err, context.DeadlineExceeded) {
		return status.DeadlineExceeded
	}
	return status.NetworkError
}

// dispatch runs op on its own goroutine and guarantees complete is invoked
// exactly once with its result.
func (c *Client) dispatch(ctx context.Context, kind string, complete CompletionFunc, op func(context.Context) status.Code) OperationHandle {
	handle := OperationHandle{ID: uuid.New(), Kind: kind}
	logger := ctxlog.FromContext(ctx).With("operation", handle.String())
	logger.Debug("Operation dispatched.")

	go func() {
		code := op(ctx)
		logger.Debug("Operation completed.", "code", code.String())
		complete(code)
	}()

	return handle
}
