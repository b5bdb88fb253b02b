package resolve

import (
	"fmt"
	"strings"
)

// CycleError is returned by Sequence when no valid load order exists. It
// carries the sorted set of identifiers that could not be sequenced.
type CycleError struct {
	Remaining []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic plugin dependencies involving: %s", strings.Join(e.Remaining, ", "))
}
