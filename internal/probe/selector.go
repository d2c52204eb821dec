package probe

import (
	"github.com/Andresgithub1995/diagnostico/internal/types"
)

// Select resolves a selection against the registry: every requested name
// is validated, the "all" pseudo-name expands to every section, and
// duplicates collapse. The returned probes are in canonical registry
// order regardless of the order they were requested in. An empty
// selection yields an empty (valid) result.
func Select(reg *Registry, sel types.Selection) ([]types.Probe, error) {
	want := make(map[string]bool, len(sel.Probes))
	for _, name := range sel.Probes {
		if name == types.AllProbes {
			for _, n := range reg.Names() {
				want[n] = true
			}
			continue
		}
		if _, err := reg.ByName(name); err != nil {
			return nil, err
		}
		want[name] = true
	}

	var out []types.Probe
	for _, p := range reg.List() {
		if want[p.Name()] {
			out = append(out, p)
		}
	}
	return out, nil
}
