package registry

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/vk/plugrun/internal/manifest"
)

// CheckManifestEngine verifies a single manifest's engine constraint
// against the registry's installed engine. Manifests without a constraint,
// and registries without an engine block, always pass.
func (r *Registry) CheckManifestEngine(m *manifest.Manifest) error {
	if m.Engine == "" || r.engine == nil {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Engine)
	if err != nil {
		return fmt.Errorf("project '%s': invalid engine constraint %q: %w", m.Name, m.Engine, err)
	}
	if !constraint.Check(r.engine.version) {
		return fmt.Errorf("project '%s' requires engine %s, installed engine is %s",
			m.Name, m.Engine, r.engine.Version)
	}
	return nil
}

// CheckClosureEngine verifies the engine constraint of every plugin in a
// resolved closure. Identifiers are checked in sorted order so the first
// reported violation is deterministic.
func (r *Registry) CheckClosureEngine(closure map[string][]string) error {
	ids := make([]string, 0, len(closure))
	for id := range closure {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		m, err := r.Manifest(id)
		if err != nil {
			return err
		}
		if err := r.CheckManifestEngine(m); err != nil {
			return fmt.Errorf("plugin '%s': %w", id, err)
		}
	}
	return nil
}
