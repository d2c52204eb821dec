// Package types defines shared type definitions used across all diagnostico packages.
package types

import "context"

// Probe is a single diagnostic section: an independent unit that inspects one
// aspect of the host and produces plain text output. Probes are constructed
// once at startup and never mutated afterwards.
//
// Run may return partial output together with a non-nil error; the caller
// decides how to surface the failure. A probe with unbounded external waits
// (reachability checks, slow utilities) must bound them itself so that Run
// always terminates.
type Probe interface {
	// Name is the unique lowercase identifier used by CLI flags and the menu.
	Name() string

	// Title is the uppercase section heading shown in the report.
	Title() string

	// Description is a one-line summary for the menu and usage listing.
	Description() string

	// Run collects the section's text. It may invoke read-only system
	// utilities; it never modifies host state.
	Run(ctx context.Context) (string, error)
}

// AllProbes is the pseudo-name that expands to every registered probe.
const AllProbes = "all"

// Selection is the set of sections a user requested for one invocation, plus
// the orthogonal export options. It is built once by the front end (flags or
// menu input) and treated as immutable afterwards.
type Selection struct {
	// Probes lists the requested section names, possibly including the "all"
	// pseudo-name. Request order is irrelevant: the report always follows the
	// canonical registry order. An empty list is valid and produces no output.
	Probes []string

	// ExportTxt duplicates the report stream to a file.
	ExportTxt bool

	// OutputPath overrides the default export filename.
	// Ignored unless ExportTxt is set.
	OutputPath string
}
