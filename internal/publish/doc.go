// Package publish turns a resolved plugin load order into the extension
// manifest the engine consumes at startup: one semicolon-joined record per
// loadable plugin, written atomically next to the project file.
package publish
