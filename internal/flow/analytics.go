package flow

import (
	"mfd/internal/models"
)

// Analytics answers path and centrality queries over a built graph. The
// adjacency lists follow edge insertion order, which fixes BFS queue order
// and makes every tie-break deterministic.
type Analytics struct {
	graph     *models.MigrationGraph
	adjacency map[string][]string
	order     []string
}

func NewAnalytics(g *models.MigrationGraph) *Analytics {
	a := &Analytics{
		graph:     g,
		adjacency: make(map[string][]string, len(g.Nodes)),
		order:     make([]string, 0, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		a.order = append(a.order, n.ID)
	}
	for _, e := range g.Edges {
		a.adjacency[e.Source] = append(a.adjacency[e.Source], e.Target)
	}
	return a
}

// ShortestPath returns the hop-minimal directed path from source to target,
// or an empty path when target is unreachable. Edges are traversable only in
// their stated direction; ties go to the first node discovered.
func (a *Analytics) ShortestPath(source, target string) []string {
	if !a.graph.HasNode(source) || !a.graph.HasNode(target) {
		return nil
	}
	if source == target {
		return []string{source}
	}

	parent := map[string]string{source: source}
	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range a.adjacency[current] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == target {
				return a.reconstruct(parent, source, target)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func (a *Analytics) reconstruct(parent map[string]string, source, target string) []string {
	var reversed []string
	for at := target; at != source; at = parent[at] {
		reversed = append(reversed, at)
	}
	reversed = append(reversed, source)

	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

// BridgeCentrality ranks communities by approximate betweenness: one BFS
// shortest path per ordered node pair, counting strict intermediates, then
// normalized by (n-1)(n-2), the number of ordered pairs a node can sit
// between. That keeps every score in [0,1] even when reciprocal edges route
// paths through a node in both directions. Only a single path per pair is
// considered; ties among equal-length paths are not all counted. This is an
// O(n²·pathlen) approximation, not Brandes' algorithm.
func (a *Analytics) BridgeCentrality() map[string]float64 {
	counts := make(map[string]int, len(a.order))
	for _, source := range a.order {
		for _, target := range a.order {
			if source == target {
				continue
			}
			path := a.ShortestPath(source, target)
			for i := 1; i < len(path)-1; i++ {
				counts[path[i]]++
			}
		}
	}

	n := len(a.order)
	normalizer := float64((n - 1) * (n - 2))
	if n < 3 {
		normalizer = 1
	}

	scores := make(map[string]float64, n)
	for _, id := range a.order {
		scores[id] = float64(counts[id]) / normalizer
	}
	return scores
}
