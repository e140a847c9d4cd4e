package flow

import (
	"sort"
	"strings"
)

// DefaultCategory is assigned to communities absent from the registry.
const DefaultCategory = "other"

// CategoryRegistry maps communities to their configured category. Lookup is
// case-insensitive. Registered communities are kept in deterministic order
// (category name, then configured member order) so isolated nodes always
// appear in the same position.
type CategoryRegistry struct {
	byCommunity map[string]string
	registered  []string
}

func NewCategoryRegistry(categories map[string][]string) *CategoryRegistry {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &CategoryRegistry{byCommunity: make(map[string]string)}
	for _, name := range names {
		for _, community := range categories[name] {
			key := strings.ToLower(community)
			if _, ok := r.byCommunity[key]; ok {
				continue
			}
			r.byCommunity[key] = name
			r.registered = append(r.registered, key)
		}
	}
	return r
}

// Lookup returns the category of a community and whether it is registered.
func (r *CategoryRegistry) Lookup(community string) (string, bool) {
	category, ok := r.byCommunity[strings.ToLower(community)]
	return category, ok
}

// Registered returns all seeded communities in deterministic order.
func (r *CategoryRegistry) Registered() []string {
	out := make([]string, len(r.registered))
	copy(out, r.registered)
	return out
}
