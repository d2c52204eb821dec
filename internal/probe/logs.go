package probe

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

// logsProbe reports the tail of the system log (journal or classic
// syslog files) and the recent kernel ring buffer.
type logsProbe struct {
	run        *engine.CommandRunner
	opts       Options
	logFiles   []string
	kernelRing engine.Chain
}

func newLogsProbe(run *engine.CommandRunner, opts Options) *logsProbe {
	return &logsProbe{
		run:      run,
		opts:     opts,
		logFiles: []string{"/var/log/syslog", "/var/log/messages"},
		kernelRing: engine.Chain{Label: "kernel ring buffer", Alternatives: []engine.Command{
			{Bin: "dmesg"},
		}},
	}
}

func (p *logsProbe) Name() string        { return "logs" }
func (p *logsProbe) Title() string       { return "System Logs" }
func (p *logsProbe) Description() string { return "Recent journal and kernel messages" }

func (p *logsProbe) Run(ctx context.Context) (string, error) {
	var b builder

	p.systemLog(ctx, &b)

	// dmesg prints oldest-first, so the tail is the interesting part.
	if ring := p.run.RunChain(ctx, p.kernelRing); !ring.Available {
		b.sep()
		b.note(p.kernelRing.NotAvailable())
	} else {
		b.sep()
		b.marker(ring.Command.String())
		b.raw(tailLines(ring.Stdout, p.opts.LogLines))
		if ring.Err != nil {
			b.fail(engine.ExitSummary(ring.CmdResult))
		}
	}

	return b.done()
}

// systemLog prefers the journal; classic hosts fall back to whichever
// syslog file actually exists. The fallback axis here is the file, not
// the binary — tail exists everywhere.
func (p *logsProbe) systemLog(ctx context.Context, b *builder) {
	n := strconv.Itoa(p.opts.LogLines)

	if p.run.Available("journalctl") {
		cmd := engine.Command{Bin: "journalctl", Args: []string{"-n", n, "--no-pager"}}
		b.addCmd(p.run.Run(ctx, cmd), 0)
		return
	}

	if p.run.Available("tail") {
		for _, path := range p.logFiles {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			cmd := engine.Command{Bin: "tail", Args: []string{"-n", n, path}}
			b.addCmd(p.run.Run(ctx, cmd), 0)
			return
		}
	}

	b.sep()
	b.note(fmt.Sprintf("system log: not available on this host (tried: journalctl, %s)",
		strings.Join(p.logFiles, ", ")))
}
