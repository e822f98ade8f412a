// Package diff computes membership changes between two company-name observations.
package diff

import "sort"

// Changes holds the names that entered and left the tracked set.
type Changes struct {
	Added   []string
	Removed []string
}

// Empty reports whether no membership change occurred.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Compute returns the set difference between a previous and a current
// observation: Added = current − previous, Removed = previous − current.
// Both result slices are sorted and duplicate-free.
func Compute(previous, current []string) Changes {
	prev := toSet(previous)
	curr := toSet(current)

	var changes Changes
	for name := range curr {
		if _, ok := prev[name]; !ok {
			changes.Added = append(changes.Added, name)
		}
	}
	for name := range prev {
		if _, ok := curr[name]; !ok {
			changes.Removed = append(changes.Removed, name)
		}
	}

	sort.Strings(changes.Added)
	sort.Strings(changes.Removed)
	return changes
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
