package resolve

import (
	"slices"
	"sort"
)

// Sequence produces a total load order over the closure: every identifier
// appears strictly after all of its direct dependencies. The order is fully
// deterministic regardless of map iteration order.
//
// The algorithm is a batched Kahn removal: each pass collects every
// identifier whose remaining dependency list is empty, sorts that batch
// lexicographically, appends it to the result, and strips the batch from
// all remaining dependency lists. Batches are sorted independently rather
// than merged into one global frontier; downstream consumers depend on this
// exact interleaving.
//
// If a pass finds no ready identifiers while work remains, the remainder
// forms one or more cycles and a *CycleError naming it is returned. A
// dependency that is not itself a key of the closure can never become
// ready and is reported the same way.
func Sequence(closure map[string][]string) ([]string, error) {
	work := make(map[string][]string, len(closure))
	for id, deps := range closure {
		work[id] = slices.Clone(deps)
	}

	result := make([]string, 0, len(closure))
	for len(work) > 0 {
		var ready []string
		for id, deps := range work {
			if len(deps) == 0 {
				ready = append(ready, id)
			}
		}

		if len(ready) == 0 {
			remaining := make([]string, 0, len(work))
			for id := range work {
				remaining = append(remaining, id)
			}
			sort.Strings(remaining)
			return nil, &CycleError{Remaining: remaining}
		}

		sort.Strings(ready)

		emitted := make(map[string]bool, len(ready))
		for _, id := range ready {
			emitted[id] = true
			delete(work, id)
		}
		for id, deps := range work {
			work[id] = slices.DeleteFunc(deps, func(dep string) bool {
				return emitted[dep]
			})
		}

		result = append(result, ready...)
	}

	return result, nil
}
