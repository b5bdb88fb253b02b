package publish

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/plugrun/internal/registry"
)

// DefaultFileName is the extension manifest written next to a project file.
const DefaultFileName = "extensions.txt"

// Record is one published plugin entry.
type Record struct {
	// Name is the plugin's display name.
	Name string
	// ClassName is the engine-internal extension class token, derived from
	// the binary file's stem.
	ClassName string
	// BinaryPath is the normalized absolute path to the plugin binary.
	BinaryPath string
	// AssetDir is the normalized absolute asset directory, empty when the
	// plugin ships no assets.
	AssetDir string
}

// Line renders the record in the engine's on-disk format.
func (r Record) Line() string {
	return strings.Join([]string{r.Name, r.ClassName, r.BinaryPath, r.AssetDir}, ";")
}

// Records builds the publishable entries for an ordered identifier list,
// preserving its order. Non-loadable entries (pure libraries, projects
// without a plugin block) are skipped. Binary expressions are evaluated
// against the given platform and build configuration; all emitted paths
// are resolved against each plugin's project directory.
func Records(ordered []string, reg *registry.Registry, platform, config string) ([]Record, error) {
	records := make([]Record, 0, len(ordered))
	for _, id := range ordered {
		m, err := reg.Manifest(id)
		if err != nil {
			return nil, err
		}
		if !m.Loadable() {
			continue
		}

		rel, err := m.Plugin.BinaryPath(platform, config)
		if err != nil {
			return nil, fmt.Errorf("plugin '%s': %w", id, err)
		}
		binaryPath := absJoin(m.Dir(), rel)

		stem := strings.TrimSuffix(filepath.Base(binaryPath), filepath.Ext(binaryPath))

		assetDir := ""
		if m.Assets != "" {
			assetDir = absJoin(m.Dir(), m.Assets)
		}

		records = append(records, Record{
			Name:       m.Name,
			ClassName:  "EngineExtension_" + stem,
			BinaryPath: binaryPath,
			AssetDir:   assetDir,
		})
	}
	return records, nil
}

func absJoin(dir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
