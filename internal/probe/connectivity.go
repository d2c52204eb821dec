package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
)

// connectivityProbe checks outward reachability three ways: ICMP echo via
// the ping utility, a raw TCP connect, and an HTTP GET. Each check is
// individually bounded; a failed check is a section failure with the
// remaining checks still run and reported.
type connectivityProbe struct {
	run  *engine.CommandRunner
	opts Options
	ping engine.Chain

	// dial is injectable so tests can observe targets without a network.
	dial func(network, addr string, timeout time.Duration) (net.Conn, error)
}

func newConnectivityProbe(run *engine.CommandRunner, opts Options) *connectivityProbe {
	return &connectivityProbe{
		run:  run,
		opts: opts,
		ping: engine.Chain{Label: "icmp echo", Alternatives: []engine.Command{
			{Bin: "ping", Args: []string{
				"-c", strconv.Itoa(opts.PingCount),
				"-W", strconv.Itoa(opts.PingWaitSec),
				opts.PingHost,
			}},
		}},
		dial: net.DialTimeout,
	}
}

func (p *connectivityProbe) Name() string        { return "connectivity" }
func (p *connectivityProbe) Title() string       { return "Connectivity" }
func (p *connectivityProbe) Description() string { return "ICMP, TCP and HTTP reachability" }

func (p *connectivityProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addChain(p.ping, p.run.RunChain(ctx, p.ping), 0)

	b.sep()
	p.tcpCheck(&b)
	p.httpCheck(ctx, &b)

	return b.done()
}

func (p *connectivityProbe) tcpCheck(b *builder) {
	start := time.Now()
	conn, err := p.dial("tcp", p.opts.TCPAddr, p.opts.NetTimeout)
	if err != nil {
		b.line(fmt.Sprintf("tcp connect %s: failed", p.opts.TCPAddr))
		b.fail(err.Error())
		return
	}
	conn.Close()
	b.line(fmt.Sprintf("tcp connect %s: ok (%s)",
		p.opts.TCPAddr, time.Since(start).Round(time.Millisecond)))
}

func (p *connectivityProbe) httpCheck(ctx context.Context, b *builder) {
	client := p.opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: p.opts.NetTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.HTTPURL, nil)
	if err != nil {
		b.line(fmt.Sprintf("http get %s: failed", p.opts.HTTPURL))
		b.fail(fmt.Sprintf("http get %s: %v", p.opts.HTTPURL, err))
		return
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		b.line(fmt.Sprintf("http get %s: failed", p.opts.HTTPURL))
		b.fail(err.Error())
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	took := time.Since(start).Round(time.Millisecond)
	b.line(fmt.Sprintf("http get %s: %s (%s)", p.opts.HTTPURL, resp.Status, took))
	if resp.StatusCode >= 400 {
		b.fail(fmt.Sprintf("http get %s: status %d", p.opts.HTTPURL, resp.StatusCode))
	}
}
