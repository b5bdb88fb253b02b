// Package manifest models a project's .plugproj file: the project's name,
// engine constraint, asset directory, required plugin identifiers, and the
// optional loadable plugin description.
//
// Manifests are parsed from HCL into a plain Go model. The one late-bound
// piece is the plugin binary path, which stays a raw hcl.Expression until
// publish time so it can reference the platform and config variables.
package manifest
