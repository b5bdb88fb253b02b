package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// NotFoundError indicates a project file that does not exist on disk.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("'%s' not found", e.Path)
}

// ParseError indicates a project file that exists but cannot be parsed or
// does not satisfy the manifest schema. It names the offending path and
// carries the underlying HCL diagnostics.
type ParseError struct {
	Path  string
	Diags hcl.Diagnostics
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse '%s': %s", e.Path, e.Diags.Error())
}

// Unwrap exposes the HCL diagnostics for callers that inspect them.
func (e *ParseError) Unwrap() error {
	return e.Diags
}
