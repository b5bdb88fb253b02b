// Package registry maps plugin identifiers to their project manifests.
//
// The registry is an HCL file, typically per machine, declaring the
// installed engine and one 'plugin' block per registered identifier. A
// Registry handle is loaded once per invocation and passed explicitly into
// the resolver; it memoizes manifest loads so no project file is parsed
// twice within one resolution run.
package registry
