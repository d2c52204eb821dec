package probe

import (
	"context"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

// servicesProbe reports running services and, on systemd hosts, the
// units that failed.
type servicesProbe struct {
	run     *engine.CommandRunner
	opts    Options
	running engine.Chain
	failed  engine.Command
}

func newServicesProbe(run *engine.CommandRunner, opts Options) *servicesProbe {
	return &servicesProbe{
		run:  run,
		opts: opts,
		running: engine.Chain{Label: "running services", Alternatives: []engine.Command{
			{Bin: "systemctl", Args: []string{"list-units", "--type=service", "--state=running"}},
			{Bin: "service", Args: []string{"--status-all"}},
		}},
		failed: engine.Command{Bin: "systemctl", Args: []string{"--failed", "--no-legend"}},
	}
}

func (p *servicesProbe) Name() string        { return "services" }
func (p *servicesProbe) Title() string       { return "Services" }
func (p *servicesProbe) Description() string { return "Running and failed system services" }

func (p *servicesProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addChain(p.running, p.run.RunChain(ctx, p.running), p.opts.HeadLines)

	// Failed units only make sense where systemctl exists; empty output
	// here is good news and stays visible as such.
	if p.run.Available(p.failed.Bin) {
		b.addCmd(p.run.Run(ctx, p.failed), 0)
	}

	return b.done()
}
