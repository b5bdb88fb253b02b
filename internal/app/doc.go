// Package app wires the tool together: validated configuration, logger
// construction, registry loading, and the operations behind each CLI
// command. The resolution pipeline itself lives in the resolve and publish
// packages; App supplies their collaborators and sequences the stages.
package app
