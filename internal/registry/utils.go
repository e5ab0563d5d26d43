package registry

import "sort"

func sortedStrings(in []string) []string {
	sort.Strings(in)
	return in
}
