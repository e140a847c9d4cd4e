package models

// CommunityNode is one community in the migration graph. ActivitySize is the
// sum of Value over all incident edges.
type CommunityNode struct {
	ID           string
	Category     string
	ActivitySize int
}

// MigrationGraph is the canonical graph passed between builder, analytics and
// exporter. Read-only after construction; analytics derive separate maps and
// never mutate it.
type MigrationGraph struct {
	Nodes []*CommunityNode
	Edges []*FlowEdge

	index map[string]*CommunityNode
}

func NewMigrationGraph(nodes []*CommunityNode, edges []*FlowEdge) *MigrationGraph {
	index := make(map[string]*CommunityNode, len(nodes))
	for _, n := range nodes {
		index[n.ID] = n
	}
	return &MigrationGraph{Nodes: nodes, Edges: edges, index: index}
}

// Node returns the node with the given id, or nil when absent.
func (g *MigrationGraph) Node(id string) *CommunityNode {
	return g.index[id]
}

func (g *MigrationGraph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// BridgeCommunity is one ranked entry of the bridge-centrality table.
type BridgeCommunity struct {
	ID         string
	Centrality float64
	Category   string
}

// SummaryStats aggregates gap statistics across all migration events of a
// run. Times are in days.
type SummaryStats struct {
	AvgMigrationTime    float64
	MedianMigrationTime float64
	FastestMigration    float64
	SlowestMigration    float64
	TotalMigrations     int
}

// AnalysisResult is the memoized output of one full pipeline run.
type AnalysisResult struct {
	Graph             *MigrationGraph
	Centrality        map[string]float64
	Bridges           []*BridgeCommunity
	Summary           *SummaryStats
	EventCount        int
	UniqueUsers       int
	SkippedRecords    int
	IntegrityWarnings int
}
