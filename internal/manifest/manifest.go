package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
)

// Plugin kinds. A library participates in dependency resolution but has no
// loadable entry point, so it never appears in the published extension list.
const (
	KindNative  = "native"
	KindManaged = "managed"
	KindLibrary = "library"
)

// Manifest is the parsed representation of a single .plugproj file.
type Manifest struct {
	// Path is the manifest file this was loaded from.
	Path string
	// Name is the project's display name.
	Name string
	// Engine is an optional semver constraint on the engine version.
	Engine string
	// Assets is the project-relative asset directory, empty when absent.
	Assets string
	// Require lists the directly required plugin identifiers.
	Require []string
	// Plugin describes the loadable artifact, nil for plain projects.
	Plugin *Plugin
}

// Plugin describes the loadable artifact a project produces.
type Plugin struct {
	Kind string
	// Binary is the project-relative path to the binary, kept as a raw
	// expression so it can reference the platform and config variables.
	Binary hcl.Expression
}

// Dir returns the directory containing the manifest file. Relative paths
// inside the manifest resolve against it.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Loadable reports whether the project yields a runtime-loadable plugin.
func (m *Manifest) Loadable() bool {
	return m.Plugin != nil && m.Plugin.Kind != KindLibrary
}

// BinaryPath evaluates the binary expression for the given platform and
// build configuration, returning the project-relative path.
func (p *Plugin) BinaryPath(platform, config string) (string, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platform": cty.StringVal(platform),
			"config":   cty.StringVal(config),
		},
	}

	var path string
	if diags := gohcl.DecodeExpression(p.Binary, evalCtx, &path); diags.HasErrors() {
		return "", fmt.Errorf("evaluating plugin binary path: %w", diags)
	}
	if path == "" {
		return "", fmt.Errorf("plugin binary path evaluated to an empty string")
	}
	return path, nil
}
