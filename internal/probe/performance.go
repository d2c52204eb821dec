package probe

import (
	"context"
	"fmt"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// performanceProbe reports load, memory pressure and the busiest
// processes, with a native gopsutil sample alongside the tool output.
type performanceProbe struct {
	run  *engine.CommandRunner
	opts Options
	top  engine.Chain
	free engine.Chain
	ps   engine.Chain
}

func newPerformanceProbe(run *engine.CommandRunner, opts Options) *performanceProbe {
	return &performanceProbe{
		run:  run,
		opts: opts,
		top: engine.Chain{Label: "cpu snapshot", Alternatives: []engine.Command{
			{Bin: "top", Args: []string{"-b", "-n", "1"}},
		}},
		free: engine.Chain{Label: "memory", Alternatives: []engine.Command{
			{Bin: "free", Args: []string{"-h"}},
		}},
		ps: engine.Chain{Label: "top processes", Alternatives: []engine.Command{
			{Bin: "ps", Args: []string{"aux", "--sort=-%cpu"}},
		}},
	}
}

func (p *performanceProbe) Name() string  { return "performance" }
func (p *performanceProbe) Title() string { return "Performance" }
func (p *performanceProbe) Description() string {
	return "Load, memory and the busiest processes"
}

func (p *performanceProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addChain(p.top, p.run.RunChain(ctx, p.top), p.opts.HeadLines)
	b.addChain(p.free, p.run.RunChain(ctx, p.free), 0)
	b.addChain(p.ps, p.run.RunChain(ctx, p.ps), p.opts.HeadLines)

	b.sep()
	if avg, err := load.Avg(); err == nil {
		cpus, _ := cpu.Counts(true)
		b.line(fmt.Sprintf("load average: %.2f %.2f %.2f (%d cpus)",
			avg.Load1, avg.Load5, avg.Load15, cpus))
	} else {
		b.note(fmt.Sprintf("load average: unavailable (%v)", err))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		b.line(fmt.Sprintf("memory: %s used / %s total (%.1f%%)",
			humanBytes(vm.Used), humanBytes(vm.Total), vm.UsedPercent))
	} else {
		b.note(fmt.Sprintf("memory: unavailable (%v)", err))
	}

	return b.done()
}
