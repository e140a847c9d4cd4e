package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"mfd/internal/flow"
	"mfd/internal/models"
	"mfd/internal/providers"
	"mfd/internal/structures"
)

type AnalysisServiceInterface interface {
	AddHistory(h *models.UserHistory) (int, error)
	PutRecords(records []*models.PostingRecord) (added int, skipped int)
	Run() (*models.AnalysisResult, error)
	Document() (*flow.Document, error)
	BuildSnapshot() (*flow.Snapshot, error)
	ShortestPath(source, target string) ([]string, error)
	Generation() uint64
	RecordCount() int
	UserCount() int
	SkippedCount() int
	Running() bool
}

// AnalysisService owns the posting record store and runs the full pipeline:
// detect → aggregate → build → analyze → summarize. The result is memoized
// against the store generation and rebuilt wholesale whenever input changes;
// it is never reused across different inputs.
type AnalysisService struct {
	conf     *structures.Config
	store    *models.PostingRecordStore
	logger   providers.Logger
	detector *flow.Detector
	builder  *flow.GraphBuilder

	mu        sync.Mutex
	cached    *models.AnalysisResult
	analytics *flow.Analytics
	cachedGen uint64
	running   atomic.Bool
}

func NewAnalysisService(conf *structures.Config, store *models.PostingRecordStore, logger providers.Logger) AnalysisServiceInterface {
	registry := flow.NewCategoryRegistry(conf.Graph.Categories)
	return &AnalysisService{
		conf:     conf,
		store:    store,
		logger:   logger,
		detector: flow.NewDetector(conf),
		builder:  flow.NewGraphBuilder(registry, conf.Graph.MinFlowThreshold),
	}
}

// AddHistory ingests one user's community activity mapping. Returns how many
// records were accepted.
func (as *AnalysisService) AddHistory(h *models.UserHistory) (int, error) {
	if h == nil || h.User == "" {
		return 0, &models.MalformedRecordError{Reason: "missing user"}
	}
	added, _ := as.PutRecords(h.Records())
	return added, nil
}

// PutRecords inserts records into the store. Malformed records are skipped
// and counted; they never abort the batch.
func (as *AnalysisService) PutRecords(records []*models.PostingRecord) (int, int) {
	added, skipped := 0, 0
	for _, rec := range records {
		if err := as.store.Add(rec); err != nil {
			skipped++
			as.logger.Warnf(providers.TypeApp, "Skipping record: %s", err)
			continue
		}
		added++
	}
	return added, skipped
}

// Run executes the pipeline, or returns the memoized result when the store
// has not changed since the last run.
func (as *AnalysisService) Run() (*models.AnalysisResult, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	generation := as.store.Generation()
	if as.cached != nil && as.cachedGen == generation {
		return as.cached, nil
	}

	as.running.Store(true)
	defer as.running.Store(false)

	if as.store.RecordCount() == 0 {
		return nil, models.ErrEmptyInput
	}

	start := time.Now()

	var events []*models.MigrationEvent
	for _, user := range as.store.Users() {
		events = append(events, as.detector.Detect(as.store.Records(user))...)
	}

	edges := flow.Aggregate(events)
	graph, warnings := as.builder.Build(edges)
	for _, w := range warnings {
		as.logger.Warnf(providers.TypeApp, "Graph integrity: %s", w)
	}

	analytics := flow.NewAnalytics(graph)
	centrality := analytics.BridgeCentrality()
	for id, score := range centrality {
		if score < 0 {
			return nil, fmt.Errorf("negative centrality %f for community %q", score, id)
		}
	}

	result := &models.AnalysisResult{
		Graph:             graph,
		Centrality:        centrality,
		Bridges:           flow.RankBridges(graph, centrality),
		Summary:           flow.Summarize(events),
		EventCount:        len(events),
		UniqueUsers:       as.store.UserCount(),
		SkippedRecords:    as.store.SkippedCount(),
		IntegrityWarnings: len(warnings),
	}

	as.cached = result
	as.analytics = analytics
	as.cachedGen = generation

	as.logger.Infof(providers.TypeApp, "Analysis complete in %s: %d events, %d nodes, %d edges, %d warnings",
		time.Since(start).Round(time.Millisecond), len(events), len(graph.Nodes), len(graph.Edges), len(warnings))

	return result, nil
}

// Document produces the deterministic interchange document for the current
// input.
func (as *AnalysisService) Document() (*flow.Document, error) {
	result, err := as.Run()
	if err != nil {
		return nil, err
	}
	return flow.Export(result.Graph, result.Centrality, result.Summary)
}

// BuildSnapshot wraps the document in the persistence envelope. Metadata is
// regenerated per call and is deliberately outside the determinism guarantee.
func (as *AnalysisService) BuildSnapshot() (*flow.Snapshot, error) {
	result, err := as.Run()
	if err != nil {
		return nil, err
	}
	doc, err := flow.Export(result.Graph, result.Centrality, result.Summary)
	if err != nil {
		return nil, err
	}
	return &flow.Snapshot{
		Document: doc,
		Flows:    flow.FlowDetails(result.Graph),
		Metadata: flow.SnapshotMetadata{
			RunID:           uuid.NewString(),
			GeneratedAt:     time.Now().UTC(),
			UniqueUsers:     result.UniqueUsers,
			CommunityCount:  len(result.Graph.Nodes),
			FlowCount:       len(result.Graph.Edges),
			TotalMigrations: result.EventCount,
		},
	}, nil
}

func (as *AnalysisService) ShortestPath(source, target string) ([]string, error) {
	if _, err := as.Run(); err != nil {
		return nil, err
	}
	as.mu.Lock()
	analytics := as.analytics
	as.mu.Unlock()
	return analytics.ShortestPath(source, target), nil
}

func (as *AnalysisService) Generation() uint64 {
	return as.store.Generation()
}

func (as *AnalysisService) RecordCount() int {
	return as.store.RecordCount()
}

func (as *AnalysisService) UserCount() int {
	return as.store.UserCount()
}

func (as *AnalysisService) SkippedCount() int {
	return as.store.SkippedCount()
}

// Running reports whether a pipeline run is currently in progress.
func (as *AnalysisService) Running() bool {
	return as.running.Load()
}
