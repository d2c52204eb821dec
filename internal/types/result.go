package types

import "time"

// ExecutionResult holds the outcome of running a single probe.
// Produced per run, rendered into the report, never persisted.
type ExecutionResult struct {
	// Probe is the probe's unique name.
	Probe string

	// Title is the section heading for the report.
	Title string

	// Output is the text the probe produced. May be partial (or empty) when
	// the probe failed mid-way.
	Output string

	// Failed reports whether the probe ended with an error.
	Failed bool

	// ErrSummary is a short human-readable cause, set only when Failed is true.
	ErrSummary string

	// Duration is how long the probe took to execute.
	Duration time.Duration
}

// RunSummary aggregates statistics over one report run.
type RunSummary struct {
	// Sections is the number of sections executed.
	Sections int

	// Failed is the number of sections that carry an error annotation.
	Failed int

	// Duration is the total wall-clock time of the run.
	Duration time.Duration
}
