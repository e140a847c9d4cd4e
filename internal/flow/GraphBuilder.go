package flow

import (
	"mfd/internal/models"
)

// GraphBuilder assembles aggregated edges into the canonical migration graph.
// Edges below the minimum flow threshold are dropped. The node set is the
// union of surviving edge endpoints plus registered communities with zero
// edges, so the visualization can still show inactive seeds.
type GraphBuilder struct {
	registry *CategoryRegistry
	minFlow  int
}

func NewGraphBuilder(registry *CategoryRegistry, minFlow int) *GraphBuilder {
	return &GraphBuilder{registry: registry, minFlow: minFlow}
}

// Build returns the graph plus integrity warnings. A community missing from
// the registry does not abort the build: the node is created with the default
// category and the inconsistency is reported.
func (b *GraphBuilder) Build(edges []*models.FlowEdge) (*models.MigrationGraph, []*models.DataIntegrityError) {
	kept := make([]*models.FlowEdge, 0, len(edges))
	for _, e := range edges {
		if e.Value < b.minFlow {
			continue
		}
		kept = append(kept, e)
	}

	var warnings []*models.DataIntegrityError
	var nodes []*models.CommunityNode
	index := make(map[string]*models.CommunityNode)

	resolve := func(id string) *models.CommunityNode {
		if node, ok := index[id]; ok {
			return node
		}
		category, ok := b.registry.Lookup(id)
		if !ok {
			category = DefaultCategory
			warnings = append(warnings, &models.DataIntegrityError{
				Community: id,
				Reason:    "no category registered, defaulted to " + DefaultCategory,
			})
		}
		node := &models.CommunityNode{ID: id, Category: category}
		index[id] = node
		nodes = append(nodes, node)
		return node
	}

	for _, e := range kept {
		source := resolve(e.Source)
		target := resolve(e.Target)
		source.ActivitySize += e.Value
		target.ActivitySize += e.Value
	}

	// Registered seeds with no surviving edges stay in the graph as
	// isolated nodes.
	for _, id := range b.registry.Registered() {
		if _, ok := index[id]; ok {
			continue
		}
		category, _ := b.registry.Lookup(id)
		node := &models.CommunityNode{ID: id, Category: category}
		index[id] = node
		nodes = append(nodes, node)
	}

	return models.NewMigrationGraph(nodes, kept), warnings
}
