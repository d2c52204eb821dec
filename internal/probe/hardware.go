package probe

import (
	"context"
	"fmt"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
	"github.com/shirou/gopsutil/v4/cpu"
)

// hardwareProbe inventories the CPU and the PCI and USB buses.
type hardwareProbe struct {
	run     *engine.CommandRunner
	opts    Options
	cpuInfo engine.Chain
	pci     engine.Chain
	usb     engine.Chain
}

func newHardwareProbe(run *engine.CommandRunner, opts Options) *hardwareProbe {
	return &hardwareProbe{
		run:  run,
		opts: opts,
		cpuInfo: engine.Chain{Label: "cpu details", Alternatives: []engine.Command{
			{Bin: "lscpu"},
		}},
		pci: engine.Chain{Label: "pci devices", Alternatives: []engine.Command{
			{Bin: "lspci"},
		}},
		usb: engine.Chain{Label: "usb devices", Alternatives: []engine.Command{
			{Bin: "lsusb"},
		}},
	}
}

func (p *hardwareProbe) Name() string        { return "hardware" }
func (p *hardwareProbe) Title() string       { return "Hardware" }
func (p *hardwareProbe) Description() string { return "CPU, PCI and USB inventory" }

func (p *hardwareProbe) Run(ctx context.Context) (string, error) {
	var b builder

	// lscpu when present; otherwise a native one-liner from gopsutil so
	// the CPU never goes unreported.
	if res := p.run.RunChain(ctx, p.cpuInfo); res.Available {
		b.addCmd(res.CmdResult, 0)
	} else {
		b.sep()
		if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
			cpus, _ := cpu.Counts(true)
			b.line(fmt.Sprintf("cpu: %s (%d logical cpus, %.0f MHz)",
				infos[0].ModelName, cpus, infos[0].Mhz))
		} else {
			b.note(p.cpuInfo.NotAvailable())
		}
	}

	b.addChain(p.pci, p.run.RunChain(ctx, p.pci), p.opts.HeadLines)
	b.addChain(p.usb, p.run.RunChain(ctx, p.usb), 0)

	return b.done()
}
