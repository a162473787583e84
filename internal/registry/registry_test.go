package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/report"
	"github.com/vk/latentgrid/internal/status"
)

// noopFactory builds a command that completes immediately with OK.
func noopFactory() *Factory {
	return &Factory{
		Build: func(deps *Deps, input any, step *config.Step) (*latent.Command, error) {
			return latent.New(step.Name, step.Expect, func(ctx context.Context, complete latent.CompleteFunc) {
				complete(status.OK)
			}, deps.Reporter), nil
		},
	}
}

func TestRegister_DuplicateKindPanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("noop", noopFactory())
	require.PanicsWithValue(t, "command factory for kind 'noop' already registered", func() {
		r.Register("noop", noopFactory())
	})
}

func TestRegister_MissingBuildPanics(t *testing.T) {
	t.Parallel()

	r := New()
	require.Panics(t, func() {
		r.Register("broken", &Factory{})
	})
}

func TestValidate_UnknownKind(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("noop", noopFactory())

	model := &config.Model{Suites: []*config.Suite{{
		Name: "s",
		Steps: []*config.Step{
			{Kind: "noop", Name: "known"},
			{Kind: "missing", Name: "unknown"},
		},
	}}}

	err := r.Validate(model)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command kind 'missing'")

	model.Suites[0].Steps = model.Suites[0].Steps[:1]
	require.NoError(t, r.Validate(model))
}

func TestBuildSuite_PreservesOrderAndTimeouts(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("noop", noopFactory())

	suite := &config.Suite{
		Name: "s",
		Steps: []*config.Step{
			{Kind: "noop", Name: "a", Expect: status.OK},
			{Kind: "noop", Name: "b", Expect: status.OK, Timeout: 2 * time.Second},
		},
	}

	items, err := r.BuildSuite(context.Background(), &Deps{Reporter: &report.Recorder{}}, suite)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].Command.Description())
	require.Zero(t, items[0].Timeout)
	require.Equal(t, "b", items[1].Command.Description())
	require.Equal(t, 2*time.Second, items[1].Timeout)
}

func TestBuildSuite_FactoryErrorNamesStep(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("failing", &Factory{
		Build: func(deps *Deps, input any, step *config.Step) (*latent.Command, error) {
			return nil, errors.New("bad input")
		},
	})

	suite := &config.Suite{Name: "s", Steps: []*config.Step{{Kind: "failing", Name: "broken"}}}
	_, err := r.BuildSuite(context.Background(), &Deps{Reporter: &report.Recorder{}}, suite)
	require.Error(t, err)
	require.Contains(t, err.Error(), `step "broken"`)
	require.Contains(t, err.Error(), "bad input")
}
