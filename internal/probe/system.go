package probe

import (
	"context"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

const osReleasePath = "/etc/os-release"

// systemProbe reports the kernel, the OS release and the uptime.
type systemProbe struct {
	run     *engine.CommandRunner
	kernel  engine.Chain
	release engine.Chain
	uptime  engine.Chain
}

func newSystemProbe(run *engine.CommandRunner) *systemProbe {
	return &systemProbe{
		run: run,
		kernel: engine.Chain{Label: "kernel", Alternatives: []engine.Command{
			{Bin: "uname", Args: []string{"-a"}},
		}},
		release: engine.Chain{Label: "os release", Alternatives: []engine.Command{
			{Bin: "hostnamectl"},
		}},
		uptime: engine.Chain{Label: "uptime", Alternatives: []engine.Command{
			{Bin: "uptime"},
		}},
	}
}

func (p *systemProbe) Name() string        { return "system" }
func (p *systemProbe) Title() string       { return "System Information" }
func (p *systemProbe) Description() string { return "Kernel, OS release and uptime" }

func (p *systemProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addChain(p.kernel, p.run.RunChain(ctx, p.kernel), 0)

	// hostnamectl gives the condensed release view; plain /etc/os-release
	// is the fallback on hosts without systemd.
	if rel := p.run.RunChain(ctx, p.release); rel.Available {
		b.addCmd(rel.CmdResult, 0)
	} else {
		b.addFile(osReleasePath)
	}

	b.addChain(p.uptime, p.run.RunChain(ctx, p.uptime), 0)

	return b.done()
}
