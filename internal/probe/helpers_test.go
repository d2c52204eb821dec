package probe

import (
	"os/exec"
	"time"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

// bareRunner simulates a host with no diagnostic tooling installed at
// all: every chain falls through to its not-available note, which keeps
// probe output deterministic on any test machine.
func bareRunner() *engine.CommandRunner {
	return engine.NewCommandRunnerWith(time.Second, nil, func(string) (string, error) {
		return "", exec.ErrNotFound
	})
}
