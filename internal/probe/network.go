package probe

import (
	"context"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

// networkProbe reports interfaces, routes and listening sockets, with
// legacy net-tools fallbacks for hosts without iproute2.
type networkProbe struct {
	run     *engine.CommandRunner
	ifaces  engine.Chain
	routes  engine.Chain
	sockets engine.Chain
}

func newNetworkProbe(run *engine.CommandRunner) *networkProbe {
	return &networkProbe{
		run: run,
		ifaces: engine.Chain{Label: "interfaces", Alternatives: []engine.Command{
			{Bin: "ip", Args: []string{"addr"}},
			{Bin: "ifconfig"},
		}},
		routes: engine.Chain{Label: "routes", Alternatives: []engine.Command{
			{Bin: "ip", Args: []string{"route"}},
			{Bin: "route", Args: []string{"-n"}},
		}},
		sockets: engine.Chain{Label: "listening sockets", Alternatives: []engine.Command{
			{Bin: "ss", Args: []string{"-tuln"}},
			{Bin: "netstat", Args: []string{"-tuln"}},
		}},
	}
}

func (p *networkProbe) Name() string        { return "network" }
func (p *networkProbe) Title() string       { return "Network" }
func (p *networkProbe) Description() string { return "Interfaces, routes and listening sockets" }

func (p *networkProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addChain(p.ifaces, p.run.RunChain(ctx, p.ifaces), 0)
	b.addChain(p.routes, p.run.RunChain(ctx, p.routes), 0)
	b.addChain(p.sockets, p.run.RunChain(ctx, p.sockets), 0)

	return b.done()
}
