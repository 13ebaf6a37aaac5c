package signalscan

// DedupeBy filters items to the subsequence of first occurrences of each
// key, preserving input order. Keys are compared exactly; items differing
// by a single character are distinct.
func DedupeBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
