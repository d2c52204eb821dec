package probe

import (
	"fmt"
	"strings"

	"github.com/Andresgithub1995/diagnostico/internal/engine"
	"github.com/Andresgithub1995/diagnostico/internal/types"
)

// Registry holds the nine probes in canonical order. Report sections
// always appear in this order, no matter how they were selected.
// A Registry is built once at startup and never mutated.
type Registry struct {
	probes []types.Probe
	byName map[string]types.Probe
}

// NewRegistry builds the canonical probe list on top of the given
// command runner.
func NewRegistry(run *engine.CommandRunner, opts Options) *Registry {
	opts = opts.withDefaults()

	probes := []types.Probe{
		newSystemProbe(run),
		newPerformanceProbe(run, opts),
		newDiskProbe(run),
		newNetworkProbe(run),
		newConnectivityProbe(run, opts),
		newDNSProbe(run, opts),
		newServicesProbe(run, opts),
		newLogsProbe(run, opts),
		newHardwareProbe(run, opts),
	}

	byName := make(map[string]types.Probe, len(probes))
	for _, p := range probes {
		byName[p.Name()] = p
	}
	return &Registry{probes: probes, byName: byName}
}

// List returns the probes in canonical order. The returned slice is a
// copy; callers cannot disturb the registry.
func (r *Registry) List() []types.Probe {
	out := make([]types.Probe, len(r.probes))
	copy(out, r.probes)
	return out
}

// ByName returns the named probe, or an error listing the valid names.
func (r *Registry) ByName(name string) (types.Probe, error) {
	if p, ok := r.byName[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown section %q (valid: %s)", name, strings.Join(r.Names(), ", "))
}

// Names returns the canonical section names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.probes))
	for i, p := range r.probes {
		names[i] = p.Name()
	}
	return names
}
