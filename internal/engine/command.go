// Package engine contains the diagnostic execution core: bounded external
// command invocation with fallback chains, the failure-isolating probe
// executor, and the report aggregation loop.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultCommandTimeout bounds a single utility invocation when the caller
// does not configure one.
const DefaultCommandTimeout = 10 * time.Second

// Command is one external utility invocation: a binary name and its fixed
// argument list. Arguments are baked in at construction — no user input ever
// reaches the argv, and no shell is involved.
type Command struct {
	// Bin is the utility name, resolved through PATH at run time.
	Bin string

	// Args are the fixed arguments passed to the utility.
	Args []string
}

// String returns the command line as it appears in the report ("ip addr").
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Bin
	}
	return c.Bin + " " + strings.Join(c.Args, " ")
}

// Chain is an ordered list of alternative commands for one piece of
// information: the first alternative whose binary exists on the host runs and
// the rest are ignored. A chain with no available alternative yields a fixed
// "not available" message rather than an error.
type Chain struct {
	// Label names what the chain collects. Used in the not-available message
	// and in debug logs.
	Label string

	// Alternatives are tried in order.
	Alternatives []Command
}

// NotAvailable is the informational text emitted when no alternative of the
// chain exists on the host.
func (ch Chain) NotAvailable() string {
	bins := make([]string, len(ch.Alternatives))
	for i, alt := range ch.Alternatives {
		bins[i] = alt.Bin
	}
	return fmt.Sprintf("%s: not available on this host (tried: %s)", ch.Label, strings.Join(bins, ", "))
}

// CmdResult is the captured outcome of one command invocation.
type CmdResult struct {
	// Command is the invocation that ran.
	Command Command

	// Stdout is the verbatim standard output.
	Stdout string

	// Stderr is the verbatim standard error output.
	Stderr string

	// Err is non-nil when the utility was missing, exited non-zero, or timed
	// out. Stdout and Stderr still hold whatever the utility produced.
	Err error
}

// ChainResult is the outcome of running a fallback chain.
type ChainResult struct {
	// Available reports whether any alternative existed on the host.
	Available bool

	// CmdResult holds the invocation outcome when Available is true.
	CmdResult
}

// CommandRunner executes read-only diagnostic utilities with bounded runtime,
// capturing stdout and stderr separately. Use NewCommandRunner.
type CommandRunner struct {
	timeout time.Duration
	log     hclog.Logger

	// lookPath is injectable so tests can simulate missing binaries.
	lookPath func(string) (string, error)
}

// NewCommandRunner creates a runner with the given per-command timeout.
// A non-positive timeout falls back to DefaultCommandTimeout; a nil logger
// falls back to a no-op logger.
func NewCommandRunner(timeout time.Duration, log hclog.Logger) *CommandRunner {
	return NewCommandRunnerWith(timeout, log, exec.LookPath)
}

// NewCommandRunnerWith is NewCommandRunner with an explicit binary resolver.
// Tests use it to simulate hosts with a specific tool set.
func NewCommandRunnerWith(timeout time.Duration, log hclog.Logger, lookPath func(string) (string, error)) *CommandRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &CommandRunner{
		timeout:  timeout,
		log:      log,
		lookPath: lookPath,
	}
}

// Available reports whether the named binary can be found through PATH.
func (r *CommandRunner) Available(bin string) bool {
	_, err := r.lookPath(bin)
	return err == nil
}

// Run executes a single command under the runner's timeout.
// The result always carries whatever output was captured; Err distinguishes a
// missing binary (IsNotFound), a timeout, and a non-zero exit.
func (r *CommandRunner) Run(ctx context.Context, cmd Command) CmdResult {
	res := CmdResult{Command: cmd}

	path, err := r.lookPath(cmd.Bin)
	if err != nil {
		res.Err = err
		r.log.Debug("binary not found", "bin", cmd.Bin)
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	execCmd := exec.CommandContext(ctx, path, cmd.Args...)
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr
	runErr := execCmd.Run()

	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		res.Err = fmt.Errorf("%s timed out after %v", cmd.Bin, r.timeout)
		r.log.Debug("command timed out", "cmd", cmd.String(), "timeout", r.timeout)
		return res
	}
	if runErr != nil {
		res.Err = fmt.Errorf("%s: %w", cmd.Bin, runErr)
		r.log.Debug("command failed", "cmd", cmd.String(), "error", runErr)
		return res
	}

	r.log.Debug("command finished", "cmd", cmd.String(), "bytes", stdout.Len())
	return res
}

// RunChain executes the first available alternative of the chain.
// When every alternative is missing, the result has Available=false and the
// caller should emit ch.NotAvailable() instead.
func (r *CommandRunner) RunChain(ctx context.Context, ch Chain) ChainResult {
	for _, alt := range ch.Alternatives {
		if !r.Available(alt.Bin) {
			r.log.Debug("falling through chain", "chain", ch.Label, "missing", alt.Bin)
			continue
		}
		return ChainResult{Available: true, CmdResult: r.Run(ctx, alt)}
	}
	r.log.Debug("chain exhausted", "chain", ch.Label)
	return ChainResult{}
}

// IsNotFound reports whether err (or any wrapped error) came from a binary
// that does not exist on the host.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// ExitSummary condenses a failed command into a one-line cause for the
// report's error annotation: the first stderr line when present, otherwise
// the error text itself.
func ExitSummary(res CmdResult) string {
	if res.Err == nil {
		return ""
	}
	if line := firstLine(res.Stderr); line != "" {
		return fmt.Sprintf("%s: %s", res.Command.Bin, line)
	}
	return res.Err.Error()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
