package resolve

// Accessor yields a plugin's direct dependency identifiers. Implementations
// may perform file or network I/O; Closure guarantees Requires is invoked
// at most once per identifier within a single resolution run.
type Accessor interface {
	Requires(id string) ([]string, error)
}

// Closure expands the seed identifiers into the full transitive dependency
// set. The returned map associates every reachable identifier with its
// direct dependency list.
//
// Each identifier is enqueued at most once, guarded by the seen set before
// enqueue, so the expansion terminates even when the dependency graph is
// cyclic. Cycle detection itself is deferred to Sequence.
func Closure(seeds []string, acc Accessor) (map[string][]string, error) {
	closure := make(map[string][]string, len(seeds))
	seen := make(map[string]bool, len(seeds))

	queue := make([]string, 0, len(seeds))
	for _, id := range seeds {
		if seen[id] {
			continue
		}
		seen[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		deps, err := acc.Requires(id)
		if err != nil {
			return nil, err
		}
		closure[id] = deps

		for _, dep := range deps {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			queue = append(queue, dep)
		}
	}

	return closure, nil
}
