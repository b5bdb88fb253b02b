package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugrun/internal/registry"
)

// fixtureRegistry builds a registry with one native plugin, one managed
// plugin with assets, and one library.
func fixtureRegistry(t *testing.T) (*registry.Registry, string) {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"registry.hcl": `
plugin "Audio" {
  project = "plugins/audio/audio.plugproj"
}
plugin "Game" {
  project = "plugins/game/game.plugproj"
}
plugin "MathLib" {
  project = "plugins/mathlib/mathlib.plugproj"
}
`,
		"plugins/audio/audio.plugproj": `
project "Audio Core" {
  plugin {
    binary = "bin/${platform}/audio.dll"
  }
}
`,
		"plugins/game/game.plugproj": `
project "Game" {
  assets = "Assets"

  plugin {
    kind   = "managed"
    binary = "bin/${platform}/${config}/game.dll"
  }
}
`,
		"plugins/mathlib/mathlib.plugproj": `
project "MathLib" {
  plugin {
    kind   = "library"
    binary = "lib/mathlib.a"
  }
}
`,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	reg, err := registry.Load(context.Background(), filepath.Join(root, "registry.hcl"))
	require.NoError(t, err)
	return reg, root
}

func TestRecords(t *testing.T) {
	reg, root := fixtureRegistry(t)

	t.Run("builds ordered records and skips libraries", func(t *testing.T) {
		records, err := Records([]string{"MathLib", "Audio", "Game"}, reg, "win_x64", "Release")
		require.NoError(t, err)
		require.Len(t, records, 2)

		audio := records[0]
		assert.Equal(t, "Audio Core", audio.Name)
		assert.Equal(t, "EngineExtension_audio", audio.ClassName)
		assert.Equal(t, filepath.Join(root, "plugins/audio/bin/win_x64/audio.dll"), audio.BinaryPath)
		assert.Empty(t, audio.AssetDir)
		assert.True(t, filepath.IsAbs(audio.BinaryPath))

		game := records[1]
		assert.Equal(t, "EngineExtension_game", game.ClassName)
		assert.Equal(t, filepath.Join(root, "plugins/game/bin/win_x64/Release/game.dll"), game.BinaryPath)
		assert.Equal(t, filepath.Join(root, "plugins/game/Assets"), game.AssetDir)
	})

	t.Run("empty input emits nothing", func(t *testing.T) {
		records, err := Records(nil, reg, "win_x64", "Release")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("unknown identifier fails", func(t *testing.T) {
		_, err := Records([]string{"Ghost"}, reg, "win_x64", "Release")
		var unknown *registry.UnknownPluginError
		assert.ErrorAs(t, err, &unknown)
	})
}

func TestRecordLine(t *testing.T) {
	record := Record{
		Name:       "Audio Core",
		ClassName:  "EngineExtension_audio",
		BinaryPath: "/abs/bin/audio.dll",
		AssetDir:   "",
	}
	assert.Equal(t, "Audio Core;EngineExtension_audio;/abs/bin/audio.dll;", record.Line())
}

func TestWrite(t *testing.T) {
	records := []Record{
		{Name: "A", ClassName: "EngineExtension_a", BinaryPath: "/bin/a.dll", AssetDir: "/assets/a"},
		{Name: "B", ClassName: "EngineExtension_b", BinaryPath: "/bin/b.dll"},
	}

	t.Run("writes one line per record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, Write(path, records))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t,
			"A;EngineExtension_a;/bin/a.dll;/assets/a\nB;EngineExtension_b;/bin/b.dll;\n",
			string(content))
	})

	t.Run("replaces an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

		require.NoError(t, Write(path, records[:1]))
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "A;EngineExtension_a;/bin/a.dll;/assets/a\n", string(content))
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Write(filepath.Join(dir, DefaultFileName), records))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, DefaultFileName, entries[0].Name())
	})

	t.Run("empty record list writes an empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, Write(path, nil))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, content)
	})
}
