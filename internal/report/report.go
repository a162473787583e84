// Package report defines the sink that latent commands hand their verdicts
// to. Reporting is record-only: a Reporter never fails and never alters the
// control flow of the command that called it.
package report

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/latentgrid/internal/status"
)

// Reporter records the outcome of a single test step. The verdict is a pass
// when actual equals expected.
type Reporter interface {
	Result(description string, actual, expected status.Code)
}

// Entry is one recorded step outcome.
type Entry struct {
	Description string
	Actual      status.Code
	Expected    status.Code
}

// Passed reports whether the entry's verdict is a pass.
func (e Entry) Passed() bool {
	return e.Actual == e.Expected
}

// Summary tallies verdicts across a run.
type Summary struct {
	mu     sync.Mutex
	passed int
	failed int
}

// Record adds one verdict to the tally.
func (s *Summary) Record(passed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if passed {
		s.passed++
	} else {
		s.failed++
	}
}

// Passed returns the number of passing steps recorded so far.
func (s *Summary) Passed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passed
}

// Failed returns the number of failing steps recorded so far.
func (s *Summary) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// AllPassed reports whether no failures have been recorded.
func (s *Summary) AllPassed() bool {
	return s.Failed() == 0
}

// String implements fmt.Stringer for log output.
func (s *Summary) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d passed, %d failed", s.passed, s.failed)
}

// LogReporter writes each verdict to a slog.Logger and tallies it into a
// Summary.
type LogReporter struct {
	logger  *slog.Logger
	summary *Summary
}

// NewLogReporter creates a reporter backed by the given logger and summary.
func NewLogReporter(logger *slog.Logger, summary *Summary) *LogReporter {
	return &LogReporter{logger: logger, summary: summary}
}

// Result implements the Reporter interface.
func (r *LogReporter) Result(description string, actual, expected status.Code) {
	passed := actual == expected
	r.summary.Record(passed)
	if passed {
		r.logger.Info("✅ "+description, "actual", actual.String(), "expected", expected.String())
	} else {
		r.logger.Error("❌ "+description, "actual", actual.String(), "expected", expected.String())
	}
}

// Recorder is an in-memory Reporter used by tests to inspect verdicts.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Result implements the Reporter interface.
func (r *Recorder) Result(description string, actual, expected status.Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Description: description, Actual: actual, Expected: expected})
}

// Entries returns a copy of all recorded outcomes.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Tee fans a verdict out to multiple reporters.
func Tee(reporters ...Reporter) Reporter {
	return teeReporter(reporters)
}

type teeReporter []Reporter

// Result implements the Reporter interface.
func (t teeReporter) Result(description string, actual, expected status.Code) {
	for _, r := range t {
		r.Result(description, actual, expected)
	}
}
