package flow

import (
	"sort"
	"time"

	"mfd/internal/models"
)

// Document is the interchange format consumed by the visualization layer.
// Field order is fixed, so marshalling identical inputs produces identical
// bytes.
type Document struct {
	Graph             GraphDocument    `json:"graph"`
	BridgeCommunities []BridgeDocument `json:"bridge_communities"`
	SummaryStats      SummaryDocument  `json:"summary_stats"`
}

type GraphDocument struct {
	Nodes []NodeDocument `json:"nodes"`
	Links []LinkDocument `json:"links"`
}

type NodeDocument struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Size     int    `json:"size"`
}

type LinkDocument struct {
	Source            string  `json:"source"`
	Target            string  `json:"target"`
	Value             int     `json:"value"`
	AvgTimeGap        float64 `json:"avg_time_gap"`
	MigrationVelocity float64 `json:"migration_velocity"`
}

type BridgeDocument struct {
	ID         string  `json:"id"`
	Centrality float64 `json:"centrality"`
	Category   string  `json:"category"`
}

type SummaryDocument struct {
	AvgMigrationTime float64 `json:"avg_migration_time"`
	FastestMigration float64 `json:"fastest_migration"`
	SlowestMigration float64 `json:"slowest_migration"`
	TotalMigrations  int     `json:"total_migrations"`
}

// Export is a pure transformation of graph plus derived analytics into the
// interchange document. It never mutates its inputs. The dangling-edge check
// is defensive; the builder already guarantees referential integrity.
func Export(g *models.MigrationGraph, centrality map[string]float64, summary *models.SummaryStats) (*Document, error) {
	doc := &Document{
		Graph: GraphDocument{
			Nodes: make([]NodeDocument, 0, len(g.Nodes)),
			Links: make([]LinkDocument, 0, len(g.Edges)),
		},
		BridgeCommunities: make([]BridgeDocument, 0, len(g.Nodes)),
	}

	for _, n := range g.Nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, NodeDocument{
			ID:       n.ID,
			Category: n.Category,
			Size:     n.ActivitySize,
		})
	}

	for _, e := range g.Edges {
		if !g.HasNode(e.Source) {
			return nil, &models.DataIntegrityError{Community: e.Source, Reason: "edge source missing from graph"}
		}
		if !g.HasNode(e.Target) {
			return nil, &models.DataIntegrityError{Community: e.Target, Reason: "edge target missing from graph"}
		}
		doc.Graph.Links = append(doc.Graph.Links, LinkDocument{
			Source:            e.Source,
			Target:            e.Target,
			Value:             e.Value,
			AvgTimeGap:        e.AvgGap,
			MigrationVelocity: e.MigrationVelocity,
		})
	}

	for _, b := range RankBridges(g, centrality) {
		doc.BridgeCommunities = append(doc.BridgeCommunities, BridgeDocument{
			ID:         b.ID,
			Centrality: b.Centrality,
			Category:   b.Category,
		})
	}

	if summary != nil {
		doc.SummaryStats = SummaryDocument{
			AvgMigrationTime: summary.AvgMigrationTime,
			FastestMigration: summary.FastestMigration,
			SlowestMigration: summary.SlowestMigration,
			TotalMigrations:  summary.TotalMigrations,
		}
	}

	return doc, nil
}

// RankBridges orders all graph nodes by centrality descending, id ascending
// on ties.
func RankBridges(g *models.MigrationGraph, centrality map[string]float64) []*models.BridgeCommunity {
	bridges := make([]*models.BridgeCommunity, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		bridges = append(bridges, &models.BridgeCommunity{
			ID:         n.ID,
			Centrality: centrality[n.ID],
			Category:   n.Category,
		})
	}
	sort.SliceStable(bridges, func(i, j int) bool {
		if bridges[i].Centrality != bridges[j].Centrality {
			return bridges[i].Centrality > bridges[j].Centrality
		}
		return bridges[i].ID < bridges[j].ID
	})
	return bridges
}

// FlowDetail carries the extended per-edge metrics persisted with snapshots.
type FlowDetail struct {
	From              string  `json:"from"`
	To                string  `json:"to"`
	TotalUsers        int     `json:"total_users"`
	AvgTimeGap        float64 `json:"avg_time_gap"`
	MedianTimeGap     float64 `json:"median_time_gap"`
	MinTimeGap        float64 `json:"min_time_gap"`
	MaxTimeGap        float64 `json:"max_time_gap"`
	MigrationVelocity float64 `json:"migration_velocity"`
}

// SnapshotMetadata describes one persisted run. It lives outside Document on
// purpose: timestamps and run ids are excluded from the determinism
// guarantee.
type SnapshotMetadata struct {
	RunID           string    `json:"run_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	UniqueUsers     int       `json:"unique_users"`
	CommunityCount  int       `json:"community_count"`
	FlowCount       int       `json:"flow_count"`
	TotalMigrations int       `json:"total_migrations"`
}

// Snapshot is the on-disk envelope: the interchange document plus metadata
// and extended flow metrics.
type Snapshot struct {
	*Document
	Flows    []FlowDetail     `json:"flows"`
	Metadata SnapshotMetadata `json:"metadata"`
}

// FlowDetails extracts the extended metrics for every edge of the graph.
func FlowDetails(g *models.MigrationGraph) []FlowDetail {
	details := make([]FlowDetail, 0, len(g.Edges))
	for _, e := range g.Edges {
		details = append(details, FlowDetail{
			From:              e.Source,
			To:                e.Target,
			TotalUsers:        e.Value,
			AvgTimeGap:        e.AvgGap,
			MedianTimeGap:     e.MedianGap,
			MinTimeGap:        e.MinGap,
			MaxTimeGap:        e.MaxGap,
			MigrationVelocity: e.MigrationVelocity,
		})
	}
	return details
}
