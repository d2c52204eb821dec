package probe

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockedHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

// ─── Connectivity probe tests ────────────────────────────────────────

func TestConnectivityProbe_AllChecksPass(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	client := mockedHTTPClient(t)
	httpmock.RegisterResponder("GET", "https://health.example.com/ping",
		httpmock.NewStringResponder(200, "ok"))

	opts := Options{
		TCPAddr:    ln.Addr().String(),
		HTTPURL:    "https://health.example.com/ping",
		HTTPClient: client,
	}.withDefaults()
	p := newConnectivityProbe(bareRunner(), opts)

	out, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out, "(icmp echo: not available on this host (tried: ping))")
	assert.Contains(t, out, "tcp connect "+ln.Addr().String()+": ok")
	assert.Contains(t, out, "http get https://health.example.com/ping: 200")
}

func TestConnectivityProbe_TCPRefusedStillRunsHTTP(t *testing.T) {
	// Grab a port that is guaranteed closed by releasing it first.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedAddr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := mockedHTTPClient(t)
	httpmock.RegisterResponder("GET", "https://health.example.com/ping",
		httpmock.NewStringResponder(200, "ok"))

	opts := Options{
		TCPAddr:    closedAddr,
		HTTPURL:    "https://health.example.com/ping",
		HTTPClient: client,
	}.withDefaults()
	p := newConnectivityProbe(bareRunner(), opts)

	out, err := p.Run(context.Background())

	require.Error(t, err, "refused TCP connect is a section failure")
	assert.Contains(t, out, "tcp connect "+closedAddr+": failed")
	assert.Contains(t, out, "200", "HTTP check must still run after the TCP failure")
}

func TestConnectivityProbe_HTTPServerError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	client := mockedHTTPClient(t)
	httpmock.RegisterResponder("GET", "https://health.example.com/ping",
		httpmock.NewStringResponder(503, "overloaded"))

	opts := Options{
		TCPAddr:    ln.Addr().String(),
		HTTPURL:    "https://health.example.com/ping",
		HTTPClient: client,
	}.withDefaults()
	p := newConnectivityProbe(bareRunner(), opts)

	out, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, out, "503")
}

func TestConnectivityProbe_FailuresAccumulate(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedAddr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := mockedHTTPClient(t)
	httpmock.RegisterResponder("GET", "https://health.example.com/ping",
		httpmock.NewStringResponder(500, "boom"))

	opts := Options{
		TCPAddr:    closedAddr,
		HTTPURL:    "https://health.example.com/ping",
		HTTPClient: client,
	}.withDefaults()
	p := newConnectivityProbe(bareRunner(), opts)

	_, err = p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "; ", "both check failures should surface in the summary")
}
