package registry

import "fmt"

// UnknownPluginError indicates an identifier that is not present in the
// registry. Resolution aborts immediately when it occurs.
type UnknownPluginError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("plugin '%s' is not registered", e.ID)
}
