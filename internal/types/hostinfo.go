package types

import "time"

// HostInfo holds the banner facts about the host being diagnosed.
// Every field is best-effort: a value the collector could not determine stays
// at its zero value and the banner simply omits it.
type HostInfo struct {
	// Hostname is the system hostname.
	Hostname string

	// Platform is the OS or distribution name (e.g. "ubuntu", "darwin").
	Platform string

	// PlatformVersion is the distribution version (e.g. "22.04").
	PlatformVersion string

	// Kernel is the kernel version string.
	Kernel string

	// Arch is the CPU architecture (e.g. "amd64", "arm64").
	Arch string

	// Virtualization names the hypervisor or container runtime, if any.
	Virtualization string

	// Uptime is how long the host has been up.
	Uptime time.Duration

	// Procs is the number of processes at collection time.
	Procs uint64

	// Root is true when the process runs with effective UID 0. Several
	// probes (dmesg, journalctl) produce richer output as root.
	Root bool
}
