package probe

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

const resolvConfPath = "/etc/resolv.conf"

// dnsProbe reports the resolver configuration and checks name resolution
// with the best available lookup tool plus Go's native resolver.
type dnsProbe struct {
	run      *engine.CommandRunner
	opts     Options
	lookup   engine.Chain
	resolver *net.Resolver
}

func newDNSProbe(run *engine.CommandRunner, opts Options) *dnsProbe {
	return &dnsProbe{
		run:  run,
		opts: opts,
		lookup: engine.Chain{Label: "dns lookup", Alternatives: []engine.Command{
			{Bin: "dig", Args: []string{"+short", opts.LookupHost}},
			{Bin: "nslookup", Args: []string{opts.LookupHost}},
			{Bin: "host", Args: []string{opts.LookupHost}},
		}},
		resolver: net.DefaultResolver,
	}
}

func (p *dnsProbe) Name() string        { return "dns" }
func (p *dnsProbe) Title() string       { return "DNS Resolution" }
func (p *dnsProbe) Description() string { return "Resolver configuration and lookup checks" }

func (p *dnsProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addFile(resolvConfPath)
	b.addChain(p.lookup, p.run.RunChain(ctx, p.lookup), 0)

	// The native lookup cross-checks the tool output: it exercises the
	// same resolv.conf path the Go runtime uses.
	b.sep()
	lctx, cancel := context.WithTimeout(ctx, p.opts.NetTimeout)
	defer cancel()
	addrs, err := p.resolver.LookupHost(lctx, p.opts.LookupHost)
	if err != nil {
		b.line(fmt.Sprintf("go resolver %s: failed", p.opts.LookupHost))
		b.fail(err.Error())
	} else {
		b.line(fmt.Sprintf("go resolver %s: %s", p.opts.LookupHost, strings.Join(addrs, ", ")))
	}

	return b.done()
}
