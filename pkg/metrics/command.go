package metrics

import "time"

// CommandMetrics records shell command executions.
//
// The shell calls ObserveCommand once per dispatched command, after the
// handler returns. Implementations must be safe for concurrent use.
type CommandMetrics interface {
	// ObserveCommand records one command execution with its outcome and
	// wall-clock duration. verb is the normalized command verb ("ls",
	// "cd", ...); unknown commands are recorded under "unknown".
	ObserveCommand(verb string, success bool, duration time.Duration)
}

// noopCommandMetrics discards all observations.
type noopCommandMetrics struct{}

// NewNoopCommandMetrics returns a CommandMetrics that does nothing.
// Used when metrics are disabled.
func NewNoopCommandMetrics() CommandMetrics {
	return noopCommandMetrics{}
}

func (noopCommandMetrics) ObserveCommand(string, bool, time.Duration) {}
