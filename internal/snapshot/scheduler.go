package snapshot

import (
	"errors"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"mfd/internal/loader"
	"mfd/internal/models"
	"mfd/internal/providers"
	"mfd/internal/services"
	"mfd/internal/snapshot/interfaces"
	"mfd/internal/structures"
)

// Scheduler drives the periodic work of the daemon: re-running the analysis
// at the refresh interval and persisting the snapshot at the save interval.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.AnalysisServiceInterface
	manager *SnapshotManager
	loader  *loader.Loader
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	refreshInterval := s.config.Analysis.RefreshInterval
	saveInterval := s.config.Snapshot.SaveInterval

	s.cron.AddFunc(gron.Every(refreshInterval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.logger.Infof(providers.TypeApp, "Refreshing analysis...")
		start := time.Now()
		result, err := s.service.Run()
		if err != nil {
			if errors.Is(err, models.ErrEmptyInput) {
				s.logger.Warnf(providers.TypeApp, "Nothing to analyze yet")
				return
			}
			s.logger.Errorf(providers.TypeApp, "Analysis error: %s", err)
			return
		}
		s.metrics.IncRunsTotal()
		s.metrics.ObserveRunDuration(time.Since(start))
		s.metrics.SetGraphSize(len(result.Graph.Nodes), len(result.Graph.Edges))
	})

	s.cron.AddFunc(gron.Every(saveInterval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.manager.SaveToFile(s.config.Snapshot.FilePath)
		if err != nil {
			if errors.Is(err, models.ErrEmptyInput) {
				return
			}
			s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
			return
		}
		s.metrics.ObserveSnapshotDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted snapshot to file %s", s.config.Snapshot.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the configured startup dataset into the store. A daemon
// without an input file starts empty and fills via the ingest endpoint.
func (s *Scheduler) Restore() error {
	if s.config.Input.Path == "" {
		return nil
	}

	records, badRows, err := s.loader.Load(s.config.Input.Path, s.config.Input.Format)
	if err != nil {
		return err
	}
	added, skipped := s.service.PutRecords(records)
	s.logger.Infof(providers.TypeApp, "Loaded %d records from %s (%d bad rows, %d malformed)",
		added, s.config.Input.Path, badRows, skipped)
	return nil
}

// Persist runs the pipeline and writes the snapshot. Called on shutdown and
// once per batch run.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting snapshot to file...")
	start := time.Now()
	err := s.manager.SaveToFile(s.config.Snapshot.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	s.metrics.ObserveSnapshotDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.AnalysisServiceInterface, manager *SnapshotManager, ldr *loader.Loader, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		manager: manager,
		loader:  ldr,
		metrics: metrics,
	}
}
