package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Andresgithub1995/diagnostico/internal/types"
)

// SafeExecutor runs one probe at a time and converts every failure mode —
// error return, panic, missing utility — into an ExecutionResult. This is the
// isolation boundary: a probe can never abort the run of the remaining
// probes, and nothing a probe does propagates past Execute.
type SafeExecutor struct {
	log hclog.Logger
}

// NewSafeExecutor creates an executor. A nil logger falls back to a no-op
// logger.
func NewSafeExecutor(log hclog.Logger) *SafeExecutor {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &SafeExecutor{log: log}
}

// Execute runs a single probe and always returns a result. On failure the
// partial output is kept and ErrSummary carries a short human-readable cause;
// on panic the panic value becomes the cause.
func (e *SafeExecutor) Execute(ctx context.Context, p types.Probe) (res types.ExecutionResult) {
	start := time.Now()
	res = types.ExecutionResult{Probe: p.Name(), Title: p.Title()}

	defer func() {
		if rec := recover(); rec != nil {
			res.Failed = true
			res.ErrSummary = fmt.Sprintf("probe panicked: %v", rec)
			e.log.Error("probe panicked", "probe", res.Probe, "panic", rec)
		}
		res.Duration = time.Since(start)
	}()

	out, err := p.Run(ctx)
	res.Output = out
	if err != nil {
		res.Failed = true
		res.ErrSummary = err.Error()
		e.log.Debug("probe failed", "probe", res.Probe, "error", err)
	}
	return res
}
