package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/report"
	"github.com/vk/latentgrid/internal/status"
)

// timerCommand completes on its own after delay, like a real async client.
func timerCommand(desc string, delay time.Duration, code status.Code, reporter report.Reporter) *latent.Command {
	return latent.New(desc, status.OK, func(ctx context.Context, complete latent.CompleteFunc) {
		time.AfterFunc(delay, func() { complete(code) })
	}, reporter)
}

func TestRun_DrivesCommandsInOrder(t *testing.T) {
	t.Parallel()

	recorder := &report.Recorder{}
	items := []Item{
		{Command: timerCommand("first", 10*time.Millisecond, status.OK, recorder)},
		{Command: timerCommand("second", 10*time.Millisecond, status.OK, recorder)},
		{Command: timerCommand("third", 10*time.Millisecond, status.OK, recorder)},
	}

	r := New(Options{TickInterval: time.Millisecond, StepTimeout: time.Second})
	require.NoError(t, r.Run(context.Background(), items))

	entries := recorder.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "first", entries[0].Description)
	require.Equal(t, "second", entries[1].Description)
	require.Equal(t, "third", entries[2].Description)
}

func TestRun_FailedVerdictDoesNotAbortRun(t *testing.T) {
	t.Parallel()

	recorder := &report.Recorder{}
	items := []Item{
		{Command: timerCommand("fails", 5*time.Millisecond, status.Internal, recorder)},
		{Command: timerCommand("still runs", 5*time.Millisecond, status.OK, recorder)},
	}

	r := New(Options{TickInterval: time.Millisecond, StepTimeout: time.Second})
	require.NoError(t, r.Run(context.Background(), items))

	entries := recorder.Entries()
	require.Len(t, entries, 2)
	require.False(t, entries[0].Passed())
	require.True(t, entries[1].Passed())
}

func TestRun_StepTimeoutFailsRun(t *testing.T) {
	t.Parallel()

	recorder := &report.Recorder{}
	// The completion never fires: the runner's deadline is the only backstop.
	hung := latent.New("never completes", status.OK, func(ctx context.Context, complete latent.CompleteFunc) {
	}, recorder)

	r := New(Options{TickInterval: time.Millisecond, StepTimeout: 25 * time.Millisecond})
	err := r.Run(context.Background(), []Item{{Command: hung}})

	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")
	require.Contains(t, err.Error(), "never completes")
	require.Empty(t, recorder.Entries(), "a timed-out step has no verdict to report")
}

func TestRun_PerItemTimeoutOverride(t *testing.T) {
	t.Parallel()

	recorder := &report.Recorder{}
	slow := timerCommand("slow but allowed", 60*time.Millisecond, status.OK, recorder)

	// The default would expire before the completion fires; the item's own
	// timeout keeps the step alive.
	r := New(Options{TickInterval: time.Millisecond, StepTimeout: 20 * time.Millisecond})
	err := r.Run(context.Background(), []Item{{Command: slow, Timeout: time.Second}})

	require.NoError(t, err)
	require.Len(t, recorder.Entries(), 1)
}

func TestRun_ContextCancellationAborts(t *testing.T) {
	t.Parallel()

	recorder := &report.Recorder{}
	hung := latent.New("waiting", status.OK, func(ctx context.Context, complete latent.CompleteFunc) {
	}, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	r := New(Options{TickInterval: time.Millisecond, StepTimeout: time.Second})
	err := r.Run(ctx, []Item{{Command: hung}})

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_RejectsAlreadyStartedCommand(t *testing.T) {
	t.Parallel()

	recorder := &report.Recorder{}
	cmd := timerCommand("reused", time.Millisecond, status.OK, recorder)
	require.NoError(t, cmd.Start(context.Background()))

	r := New(Options{TickInterval: time.Millisecond, StepTimeout: time.Second})
	err := r.Run(context.Background(), []Item{{Command: cmd}})

	require.Error(t, err)
	require.ErrorIs(t, err, latent.ErrAlreadyStarted)
}
