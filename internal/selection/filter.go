package selection

import (
	"strings"

	"github.com/wonny/readytrade/internal/contracts"
)

// Filter returns the catalog players whose name contains query
// (case-insensitive) and whose id is not in exclude.
// An empty query matches every player. Catalog order is preserved.
func Filter(catalog []contracts.Player, exclude []int, query string) []contracts.Player {
	skip := make(map[int]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	needle := strings.ToLower(query)
	out := make([]contracts.Player, 0, len(catalog))
	for _, p := range catalog {
		if _, ok := skip[p.ID]; ok {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}
