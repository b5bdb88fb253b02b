package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugrun/internal/manifest"
)

// writeRegistry lays out a registry file plus any referenced project files
// under a fresh temp dir and returns the registry path.
func writeRegistry(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(root, "registry.hcl")
}

func TestLoad(t *testing.T) {
	t.Run("engine and plugins", func(t *testing.T) {
		path := writeRegistry(t, map[string]string{
			"registry.hcl": `
engine {
  version = "5.2.1"
  root    = "engine"
}

plugin "CoreUtils" {
  project = "plugins/CoreUtils/coreutils.plugproj"
}
`,
		})
		reg, err := Load(context.Background(), path)
		require.NoError(t, err)

		require.NotNil(t, reg.Engine())
		assert.Equal(t, "5.2.1", reg.Engine().Version)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "engine"), reg.Engine().Root)

		project, err := reg.ProjectFile("CoreUtils")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "plugins/CoreUtils/coreutils.plugproj"), project)
		assert.Equal(t, []string{"CoreUtils"}, reg.IDs())
	})

	t.Run("registry without engine block", func(t *testing.T) {
		path := writeRegistry(t, map[string]string{
			"registry.hcl": `
plugin "Solo" {
  project = "solo.plugproj"
}
`,
		})
		reg, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Nil(t, reg.Engine())
	})

	t.Run("missing registry file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "registry.hcl"))
		assert.Error(t, err)
	})

	t.Run("duplicate plugin id", func(t *testing.T) {
		path := writeRegistry(t, map[string]string{
			"registry.hcl": `
plugin "Twin" {
  project = "a.plugproj"
}
plugin "Twin" {
  project = "b.plugproj"
}
`,
		})
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "registered twice")
	})

	t.Run("invalid engine version", func(t *testing.T) {
		path := writeRegistry(t, map[string]string{
			"registry.hcl": `
engine {
  version = "latest"
  root    = "engine"
}
`,
		})
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "invalid engine version")
	})
}

func TestProjectFileUnknown(t *testing.T) {
	path := writeRegistry(t, map[string]string{"registry.hcl": ``})
	reg, err := Load(context.Background(), path)
	require.NoError(t, err)

	_, err = reg.ProjectFile("Ghost")
	var unknown *UnknownPluginError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Ghost", unknown.ID)

	_, err = reg.Manifest("Ghost")
	assert.ErrorAs(t, err, &unknown)
}

func TestManifestMemoization(t *testing.T) {
	path := writeRegistry(t, map[string]string{
		"registry.hcl": `
plugin "Cached" {
  project = "cached.plugproj"
}
`,
		"cached.plugproj": `project "Cached" {}`,
	})
	reg, err := Load(context.Background(), path)
	require.NoError(t, err)

	first, err := reg.Manifest("Cached")
	require.NoError(t, err)

	// Removing the backing file proves the second lookup never re-reads it.
	projectPath, err := reg.ProjectFile("Cached")
	require.NoError(t, err)
	require.NoError(t, os.Remove(projectPath))

	second, err := reg.Manifest("Cached")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRequires(t *testing.T) {
	path := writeRegistry(t, map[string]string{
		"registry.hcl": `
plugin "Leaf" {
  project = "leaf.plugproj"
}
plugin "Top" {
  project = "top.plugproj"
}
`,
		"leaf.plugproj": `project "Leaf" {}`,
		"top.plugproj": `
project "Top" {
  require = ["Leaf"]
}
`,
	})
	reg, err := Load(context.Background(), path)
	require.NoError(t, err)

	deps, err := reg.Requires("Top")
	require.NoError(t, err)
	assert.Equal(t, []string{"Leaf"}, deps)

	deps, err = reg.Requires("Leaf")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestEngineChecks(t *testing.T) {
	newRegistry := func(t *testing.T, engineBlock string) *Registry {
		t.Helper()
		path := writeRegistry(t, map[string]string{
			"registry.hcl": engineBlock + `
plugin "Pinned" {
  project = "pinned.plugproj"
}
`,
			"pinned.plugproj": `
project "Pinned" {
  engine = ">= 5.2"
}
`,
		})
		reg, err := Load(context.Background(), path)
		require.NoError(t, err)
		return reg
	}

	t.Run("satisfied constraint", func(t *testing.T) {
		reg := newRegistry(t, `
engine {
  version = "5.2.1"
  root    = "engine"
}
`)
		assert.NoError(t, reg.CheckClosureEngine(map[string][]string{"Pinned": {}}))
	})

	t.Run("violated constraint names the plugin", func(t *testing.T) {
		reg := newRegistry(t, `
engine {
  version = "5.1.0"
  root    = "engine"
}
`)
		err := reg.CheckClosureEngine(map[string][]string{"Pinned": {}})
		require.Error(t, err)
		assert.ErrorContains(t, err, "Pinned")
		assert.ErrorContains(t, err, ">= 5.2")
	})

	t.Run("no engine block skips checks", func(t *testing.T) {
		reg := newRegistry(t, "")
		assert.NoError(t, reg.CheckClosureEngine(map[string][]string{"Pinned": {}}))
	})

	t.Run("invalid constraint is an error", func(t *testing.T) {
		path := writeRegistry(t, map[string]string{
			"registry.hcl": `
engine {
  version = "5.2.1"
  root    = "engine"
}
`,
		})
		reg, err := Load(context.Background(), path)
		require.NoError(t, err)

		err = reg.CheckManifestEngine(&manifest.Manifest{Name: "Odd", Engine: "not-a-range"})
		assert.ErrorContains(t, err, "invalid engine constraint")
	})
}
