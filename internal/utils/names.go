package utils

import "sort"

// SortedNames returns the keys of a string-keyed map in sorted order.
// Deterministic ordering keeps suggestion ties and diagnostics stable.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
