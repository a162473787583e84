package latent

import (
	"context"
	"errors"
	"sync"

	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/report"
	"github.com/vk/latentgrid/internal/status"
)

// State describes where a command is in its lifecycle.
type State uint32

const (
	// NotStarted means Start has not been called yet.
	NotStarted State = iota
	// Pending means the asynchronous request is in flight.
	Pending
	// Finished means the completion has fired and the verdict is recorded.
	Finished
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Pending:
		return "pending"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Verdict is the recorded outcome of a finished command.
type Verdict uint32

const (
	// VerdictNone means the completion has not fired yet.
	VerdictNone Verdict = iota
	// VerdictPass means the completion delivered the expected code.
	VerdictPass
	// VerdictFail means the completion delivered any other code.
	VerdictFail
)

// String implements fmt.Stringer for log output.
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictFail:
		return "fail"
	default:
		return "none"
	}
}

// ErrAlreadyStarted is returned when Start is called on a command that has
// already issued its request. A command is single-shot.
var ErrAlreadyStarted = errors.New("latent: command already started")

// CompleteFunc is the one-shot continuation a StartFunc hands to the
// external operation. It is safe to invoke from any goroutine; a second
// invocation is ignored and the first verdict wins.
type CompleteFunc func(code status.Code)

// StartFunc issues exactly one asynchronous request and arranges for
// complete to be invoked with the operation's status code. It must not
// block: the request itself runs on the external client's own machinery.
type StartFunc func(ctx context.Context, complete CompleteFunc)

// Command is a single-shot, poll-driven test step. Create one with New,
// hand it to the runner, and the runner drives it through Start and Update
// while the external client drives the completion.
type Command struct {
	desc     string
	expect   status.Code
	start    StartFunc
	reporter report.Reporter

	mu      sync.Mutex
	state   State
	verdict Verdict
	actual  status.Code
}

// New creates a command that reports a pass when the completion delivers
// the expect code.
func New(desc string, expect status.Code, start StartFunc, reporter report.Reporter) *Command {
	if start == nil {
		panic("latent: StartFunc must not be nil")
	}
	if reporter == nil {
		panic("latent: Reporter must not be nil")
	}
	return &Command{
		desc:     desc,
		expect:   expect,
		start:    start,
		reporter: reporter,
	}
}

// Description returns the human-readable step description used in reports.
func (c *Command) Description() string {
	return c.desc
}

// Expected returns the status code the command treats as a pass.
func (c *Command) Expected() status.Code {
	return c.expect
}

// State returns the command's current lifecycle state.
func (c *Command) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Verdict returns the recorded outcome, or VerdictNone while the operation
// is still in flight.
func (c *Command) Verdict() Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verdict
}

// Actual returns the status code the completion delivered. Only meaningful
// once Verdict is not VerdictNone.
func (c *Command) Actual() status.Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actual
}

// Start issues the command's one asynchronous request. It transitions the
// command to Pending before invoking the StartFunc, so a completion that
// fires before Start returns is handled like any other. Calling Start a
// second time returns ErrAlreadyStarted without issuing anything.
func (c *Command) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != NotStarted {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.state = Pending
	c.mu.Unlock()

	logger := ctxlog.FromContext(ctx).With("step", c.desc)
	logger.Debug("Step started, request issued.")

	c.start(ctx, func(code status.Code) {
		c.complete(ctx, code)
	})
	return nil
}

// Update is the runner's poll. It returns true once the completion has
// fired and the verdict has been recorded, false otherwise. It never
// blocks, has no side effects, and is well-defined both before Start
// (false) and after Finished (true, idempotent).
func (c *Command) Update() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Finished
}

// complete is the one-shot continuation. It records the verdict, hands it
// to the reporter, and only then transitions to Finished, so the runner
// never observes a finished command whose verdict is missing. A duplicate
// invocation is logged and ignored.
func (c *Command) complete(ctx context.Context, code status.Code) {
	c.mu.Lock()
	if c.verdict != VerdictNone || c.state == Finished {
		c.mu.Unlock()
		ctxlog.FromContext(ctx).Warn("Duplicate completion ignored.",
			"step", c.desc, "code", code.String())
		return
	}
	if c.state == NotStarted {
		// The only holder of this continuation is the StartFunc invoked by
		// Start, which has already moved the command to Pending.
		c.mu.Unlock()
		ctxlog.FromContext(ctx).Warn("Completion before start ignored.",
			"step", c.desc, "code", code.String())
		return
	}
	c.actual = code
	if code == c.expect {
		c.verdict = VerdictPass
	} else {
		c.verdict = VerdictFail
	}
	c.mu.Unlock()

	c.reporter.Result(c.desc, code, c.expect)

	c.mu.Lock()
	c.state = Finished
	c.mu.Unlock()
}
