package memory

import "sort"

// sortedRows returns the values of m in insertion order.
func sortedRows[T any](m map[string]row[T]) []T {
	rows := make([]row[T], 0, len(m))
	for _, r := range m {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.value
	}
	return out
}

func filterRows[T any](m map[string]row[T], keep func(T) bool) []T {
	all := sortedRows(m)
	out := make([]T, 0, len(all))
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
