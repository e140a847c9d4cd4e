package flow

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfd/internal/models"
)

func exportFixture() (*models.MigrationGraph, map[string]float64, *models.SummaryStats) {
	g := chainGraph([2]string{"fitness", "loseit"}, [2]string{"loseit", "keto"})
	centrality := map[string]float64{"fitness": 0, "loseit": 1, "keto": 0}
	summary := &models.SummaryStats{
		AvgMigrationTime: 10,
		FastestMigration: 5,
		SlowestMigration: 15,
		TotalMigrations:  2,
	}
	return g, centrality, summary
}

func TestExport_DocumentShape(t *testing.T) {
	g, centrality, summary := exportFixture()
	doc, err := Export(g, centrality, summary)
	require.NoError(t, err)

	assert.Len(t, doc.Graph.Nodes, 3)
	assert.Len(t, doc.Graph.Links, 2)
	require.Len(t, doc.BridgeCommunities, 3)
	assert.Equal(t, "loseit", doc.BridgeCommunities[0].ID)
	assert.Equal(t, 2, doc.SummaryStats.TotalMigrations)
}

func TestExport_BridgeTieBreakByID(t *testing.T) {
	g, centrality, summary := exportFixture()
	doc, err := Export(g, centrality, summary)
	require.NoError(t, err)

	// fitness and keto tie at zero, id ascending.
	assert.Equal(t, "fitness", doc.BridgeCommunities[1].ID)
	assert.Equal(t, "keto", doc.BridgeCommunities[2].ID)
}

func TestExport_DanglingEdgeRejected(t *testing.T) {
	g := models.NewMigrationGraph(
		[]*models.CommunityNode{{ID: "fitness", Category: "health"}},
		[]*models.FlowEdge{flowEdge("fitness", "ghost", 3)},
	)

	_, err := Export(g, nil, nil)
	var integrity *models.DataIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "ghost", integrity.Community)
}

func TestExport_NilSummary(t *testing.T) {
	g, centrality, _ := exportFixture()
	doc, err := Export(g, centrality, nil)
	require.NoError(t, err)
	assert.Zero(t, doc.SummaryStats.TotalMigrations)
}

func TestExport_MarshalIsDeterministic(t *testing.T) {
	g, centrality, summary := exportFixture()

	first, err := Export(g, centrality, summary)
	require.NoError(t, err)
	second, err := Export(g, centrality, summary)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExport_JSONFieldNames(t *testing.T) {
	g, centrality, summary := exportFixture()
	doc, err := Export(g, centrality, summary)
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "graph")
	assert.Contains(t, decoded, "bridge_communities")
	assert.Contains(t, decoded, "summary_stats")

	graph := decoded["graph"].(map[string]interface{})
	links := graph["links"].([]interface{})
	require.NotEmpty(t, links)
	link := links[0].(map[string]interface{})
	assert.Contains(t, link, "avg_time_gap")
	assert.Contains(t, link, "migration_velocity")
}

func TestFlowDetails_CarriesExtendedMetrics(t *testing.T) {
	g := models.NewMigrationGraph(
		[]*models.CommunityNode{{ID: "fitness"}, {ID: "loseit"}},
		[]*models.FlowEdge{{
			Source:            "fitness",
			Target:            "loseit",
			Value:             3,
			AvgGap:            10,
			MedianGap:         9,
			MinGap:            5,
			MaxGap:            15,
			MigrationVelocity: 1.5,
		}},
	)

	details := FlowDetails(g)
	require.Len(t, details, 1)
	d := details[0]
	assert.Equal(t, "fitness", d.From)
	assert.Equal(t, 3, d.TotalUsers)
	assert.InDelta(t, 9.0, d.MedianTimeGap, 1e-9)
	assert.InDelta(t, 1.5, d.MigrationVelocity, 1e-9)
}
