// Package hostinfo collects the report banner facts via gopsutil.
package hostinfo

import (
	"os"
	"runtime"
	"time"

	"github.com/Andresgithub1995/diagnostico/internal/types"
	"github.com/shirou/gopsutil/v4/host"
)

// Collect gathers the host summary shown in the report banner. Every
// field is best-effort: whatever cannot be determined stays at its zero
// value and the banner omits it. Collect never fails.
func Collect() types.HostInfo {
	info := types.HostInfo{
		Arch: runtime.GOARCH,
		Root: os.Geteuid() == 0,
	}

	if h, err := os.Hostname(); err == nil {
		info.Hostname = h
	}

	hi, err := host.Info()
	if err != nil {
		info.Platform = runtime.GOOS
		return info
	}

	info.Platform = hi.Platform
	if info.Platform == "" {
		info.Platform = runtime.GOOS
	}
	info.PlatformVersion = hi.PlatformVersion
	info.Kernel = hi.KernelVersion
	info.Uptime = time.Duration(hi.Uptime) * time.Second
	info.Procs = hi.Procs

	// Only guests report their hypervisor or container runtime; on host
	// roles the field stays empty and the banner shows "physical".
	if virt, role, err := host.Virtualization(); err == nil && role == "guest" {
		info.Virtualization = virt
	}

	return info
}
