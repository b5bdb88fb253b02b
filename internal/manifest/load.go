package manifest

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclManifestFile is the top-level structure of a .plugproj file for decoding.
type hclManifestFile struct {
	Project *hclProject `hcl:"project,block"`
}

// hclProject represents the single 'project' block.
type hclProject struct {
	Name    string     `hcl:"name,label"`
	Engine  string     `hcl:"engine,optional"`
	Assets  string     `hcl:"assets,optional"`
	Require []string   `hcl:"require,optional"`
	Plugin  *hclPlugin `hcl:"plugin,block"`
}

// hclPlugin represents the optional 'plugin' block.
type hclPlugin struct {
	Kind   string         `hcl:"kind,optional"`
	Binary hcl.Expression `hcl:"binary"`
}

// LoadFile parses the .plugproj file at path into a Manifest. A missing
// file yields a *NotFoundError; any syntax or schema problem yields a
// *ParseError naming the path.
func LoadFile(path string) (*Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &ParseError{Path: path, Diags: diags}
	}

	var raw hclManifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, &ParseError{Path: path, Diags: diags}
	}
	if raw.Project == nil {
		return nil, &ParseError{Path: path, Diags: hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing project block",
			Detail:   "A .plugproj file must contain exactly one 'project' block.",
		}}}
	}

	m := &Manifest{
		Path:    path,
		Name:    raw.Project.Name,
		Engine:  raw.Project.Engine,
		Assets:  raw.Project.Assets,
		Require: raw.Project.Require,
	}

	if raw.Project.Plugin != nil {
		kind := raw.Project.Plugin.Kind
		if kind == "" {
			kind = KindNative
		}
		switch kind {
		case KindNative, KindManaged, KindLibrary:
		default:
			return nil, &ParseError{Path: path, Diags: hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid plugin kind",
				Detail:   "The plugin 'kind' must be one of 'native', 'managed' or 'library', got '" + kind + "'.",
			}}}
		}
		m.Plugin = &Plugin{
			Kind:   kind,
			Binary: raw.Project.Plugin.Binary,
		}
	}

	return m, nil
}
