// Package resolve implements the plugin dependency resolution engine: it
// expands a project's required plugin identifiers into the full transitive
// closure and sequences that closure into a deterministic load order.
//
// The package is deliberately free of I/O and logging. Manifest access is
// abstracted behind the Accessor interface so the engine can be driven by
// the on-disk registry in production and by an in-memory fake in tests.
// All failure detail is carried in structured error values.
package resolve
