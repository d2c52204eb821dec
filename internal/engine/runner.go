package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Andresgithub1995/diagnostico/internal/types"
)

// SectionWriter renders one executed section into the report stream.
// Implemented by output.Renderer.
type SectionWriter interface {
	WriteSection(w io.Writer, res types.ExecutionResult) error
}

// Runner drives a report run: it executes probes in the order given (the
// selector's canonical order) through the SafeExecutor and streams each
// rendered section to the report writer as soon as its probe finishes, so
// the first bytes appear before later probes have started.
type Runner struct {
	exec   *SafeExecutor
	render SectionWriter
	log    hclog.Logger

	// Progress, when non-nil, is notified with the section title just before
	// each probe starts. Used for the spinner suffix; it must not write to
	// the report stream.
	Progress func(title string)
}

// NewRunner creates a runner around the given executor and section writer.
func NewRunner(exec *SafeExecutor, render SectionWriter, log hclog.Logger) *Runner {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Runner{exec: exec, render: render, log: log}
}

// Run executes probes sequentially in the given order and writes the report
// to w. Probe failures are rendered inline and never stop the loop; only a
// write failure on the report stream itself aborts the run.
func (r *Runner) Run(ctx context.Context, probes []types.Probe, w io.Writer) (types.RunSummary, error) {
	start := time.Now()
	var sum types.RunSummary

	for _, p := range probes {
		if r.Progress != nil {
			r.Progress(p.Title())
		}
		res := r.exec.Execute(ctx, p)
		sum.Sections++
		if res.Failed {
			sum.Failed++
		}
		r.log.Debug("section complete",
			"probe", res.Probe, "failed", res.Failed, "duration", res.Duration)
		if err := r.render.WriteSection(w, res); err != nil {
			sum.Duration = time.Since(start)
			return sum, fmt.Errorf("writing section %q: %w", res.Probe, err)
		}
	}

	sum.Duration = time.Since(start)
	return sum, nil
}
