package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/plugrun/internal/ctxlog"
	"github.com/vk/plugrun/internal/manifest"
)

// Engine describes the installed engine the registry points at.
type Engine struct {
	// Version is the engine's release version, e.g. "5.2.1".
	Version string
	// Root is the engine's installation directory.
	Root string

	version *semver.Version
}

// ToolPath returns the path of an engine executable for the given platform.
func (e *Engine) ToolPath(platform, tool string) string {
	return filepath.Join(e.Root, "bin", platform, tool+exeSuffix())
}

// AssetCompilerPath returns the path of the engine's asset compiler.
func (e *Engine) AssetCompilerPath() string {
	return filepath.Join(e.Root, "tools", "assetc"+exeSuffix())
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// Registry is a loaded plugin registry. It is not safe for concurrent use;
// each resolution run owns its own instance.
type Registry struct {
	path      string
	engine    *Engine
	projects  map[string]string
	manifests map[string]*manifest.Manifest
}

// hclRegistryFile is the top-level structure of a registry file for decoding.
type hclRegistryFile struct {
	Engine  *hclEngine        `hcl:"engine,block"`
	Plugins []*hclPluginEntry `hcl:"plugin,block"`
}

type hclEngine struct {
	Version string `hcl:"version"`
	Root    string `hcl:"root"`
}

type hclPluginEntry struct {
	ID      string `hcl:"id,label"`
	Project string `hcl:"project"`
}

// Load reads and validates the registry file at path. Relative project
// paths resolve against the registry file's directory.
func Load(ctx context.Context, path string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading plugin registry.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", path, diags)
	}

	var raw hclRegistryFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode registry file %s: %w", path, diags)
	}

	reg := &Registry{
		path:      path,
		projects:  make(map[string]string, len(raw.Plugins)),
		manifests: make(map[string]*manifest.Manifest, len(raw.Plugins)),
	}
	baseDir := filepath.Dir(path)

	if raw.Engine != nil {
		version, err := semver.NewVersion(raw.Engine.Version)
		if err != nil {
			return nil, fmt.Errorf("registry %s: invalid engine version %q: %w", path, raw.Engine.Version, err)
		}
		reg.engine = &Engine{
			Version: raw.Engine.Version,
			Root:    resolvePath(baseDir, raw.Engine.Root),
			version: version,
		}
	}

	for _, entry := range raw.Plugins {
		if _, exists := reg.projects[entry.ID]; exists {
			return nil, fmt.Errorf("registry %s: plugin '%s' registered twice", path, entry.ID)
		}
		reg.projects[entry.ID] = resolvePath(baseDir, entry.Project)
	}

	logger.Debug("Plugin registry loaded.", "plugins", len(reg.projects))
	return reg, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// Engine returns the installed engine description, or nil when the
// registry does not declare one.
func (r *Registry) Engine() *Engine {
	return r.engine
}

// IDs returns the set of registered plugin identifiers.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	return ids
}

// ProjectFile resolves an identifier to its project manifest path.
func (r *Registry) ProjectFile(id string) (string, error) {
	path, ok := r.projects[id]
	if !ok {
		return "", &UnknownPluginError{ID: id}
	}
	return path, nil
}

// Manifest loads the manifest for the given identifier, memoized per
// Registry instance so each project file is read at most once.
func (r *Registry) Manifest(id string) (*manifest.Manifest, error) {
	if m, ok := r.manifests[id]; ok {
		return m, nil
	}

	path, err := r.ProjectFile(id)
	if err != nil {
		return nil, err
	}
	m, err := manifest.LoadFile(path)
	if err != nil {
		return nil, err
	}

	r.manifests[id] = m
	return m, nil
}

// Requires yields the direct dependency identifiers of a plugin. It makes
// *Registry satisfy the resolver's Accessor interface.
func (r *Registry) Requires(id string) ([]string, error) {
	m, err := r.Manifest(id)
	if err != nil {
		return nil, err
	}
	return m.Require, nil
}
