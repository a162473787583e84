// Package app wires the application together: logger construction, suite
// loading, module registration, and the run loop that hands each suite's
// command queue to the runner.
package app
