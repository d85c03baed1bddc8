package resolver

import "sort"

func distinct(table map[string]string) []string {
	seen := make(map[string]struct{}, len(table))
	out := make([]string, 0, len(table))
	for _, v := range table {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
