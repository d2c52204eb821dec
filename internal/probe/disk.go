package probe

import (
	"context"
	"fmt"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
	"github.com/shirou/gopsutil/v4/disk"
)

// diskProbe reports filesystem usage and the block device layout.
type diskProbe struct {
	run    *engine.CommandRunner
	df     engine.Chain
	blocks engine.Chain
}

func newDiskProbe(run *engine.CommandRunner) *diskProbe {
	return &diskProbe{
		run: run,
		df: engine.Chain{Label: "filesystem usage", Alternatives: []engine.Command{
			{Bin: "df", Args: []string{"-h"}},
		}},
		blocks: engine.Chain{Label: "block devices", Alternatives: []engine.Command{
			{Bin: "lsblk"},
			{Bin: "blkid"},
		}},
	}
}

func (p *diskProbe) Name() string        { return "disk" }
func (p *diskProbe) Title() string       { return "Disk Usage" }
func (p *diskProbe) Description() string { return "Filesystem usage and block devices" }

func (p *diskProbe) Run(ctx context.Context) (string, error) {
	var b builder

	b.addChain(p.df, p.run.RunChain(ctx, p.df), 0)
	b.addChain(p.blocks, p.run.RunChain(ctx, p.blocks), 0)

	b.sep()
	if du, err := disk.Usage("/"); err == nil {
		b.line(fmt.Sprintf("root filesystem: %s used / %s total (%.1f%% used, %s free)",
			humanBytes(du.Used), humanBytes(du.Total), du.UsedPercent, humanBytes(du.Free)))
	} else {
		b.note(fmt.Sprintf("root filesystem usage: unavailable (%v)", err))
	}

	return b.done()
}
