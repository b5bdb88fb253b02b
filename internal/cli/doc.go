// Package cli defines the plugrun command tree. It translates flags,
// environment variables, and the optional per-user config file into the
// application's validated configuration, and maps each subcommand onto an
// app operation.
package cli
