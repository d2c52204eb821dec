// Package probe implements the nine diagnostic sections and the canonical
// registry that orders them. Every probe is read-only: it shells out to
// platform utilities (never through a shell), reads well-known files with a
// size cap, or queries native collectors, and assembles the results into the
// section's report text.
package probe

import (
	"net/http"
	"time"
)

// Options carries the per-probe tunables resolved by the config layer.
// The zero value is usable; unset fields fall back to the defaults below.
type Options struct {
	// PingHost is the ICMP reachability target.
	PingHost string

	// PingCount is the number of echo requests (ping -c).
	PingCount int

	// PingWaitSec is the per-reply wait in seconds (ping -W).
	PingWaitSec int

	// TCPAddr is the host:port for the TCP connect check.
	TCPAddr string

	// HTTPURL is the target of the HTTP reachability check.
	HTTPURL string

	// LookupHost is the name resolved by the DNS section.
	LookupHost string

	// NetTimeout bounds the TCP dial, the HTTP request and the native
	// resolver lookup, each individually.
	NetTimeout time.Duration

	// LogLines is how many recent log lines each log source contributes.
	LogLines int

	// HeadLines caps long listings (process tables, unit lists, PCI scans).
	HeadLines int

	// HTTPClient overrides the reachability check's client. Tests inject
	// an httpmock-instrumented client here; nil means a default client
	// bounded by NetTimeout.
	HTTPClient *http.Client
}

// withDefaults fills unset tunables so a zero Options still probes sanely.
func (o Options) withDefaults() Options {
	if o.PingHost == "" {
		o.PingHost = "1.1.1.1"
	}
	if o.PingCount <= 0 {
		o.PingCount = 3
	}
	if o.PingWaitSec <= 0 {
		o.PingWaitSec = 2
	}
	if o.TCPAddr == "" {
		o.TCPAddr = "1.1.1.1:443"
	}
	if o.HTTPURL == "" {
		o.HTTPURL = "https://www.google.com"
	}
	if o.LookupHost == "" {
		o.LookupHost = "google.com"
	}
	if o.NetTimeout <= 0 {
		o.NetTimeout = 5 * time.Second
	}
	if o.LogLines <= 0 {
		o.LogLines = 50
	}
	if o.HeadLines <= 0 {
		o.HeadLines = 20
	}
	return o
}
