package testutil

import (
	"sync"

	"mfd/internal/flow"
	"mfd/internal/models"
	"mfd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountByLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.Logs {
		if e.Level == level {
			count++
		}
	}
	return count
}

// MockAnalysisService implements services.AnalysisServiceInterface with
// injectable data.
type MockAnalysisService struct {
	mu            sync.Mutex
	Histories     []*models.UserHistory
	PutCalls      int
	RunResult     *models.AnalysisResult
	RunErr        error
	Doc           *flow.Document
	DocErr        error
	Snap          *flow.Snapshot
	SnapErr       error
	Path          []string
	PathErr       error
	Gen           uint64
	Records       int
	UsersTotal    int
	Skipped       int
	RunningFlag   bool
	RunCalls      int
	SnapshotCalls int
	DocumentCalls int
}

func (m *MockAnalysisService) AddHistory(h *models.UserHistory) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h == nil || h.User == "" {
		return 0, &models.MalformedRecordError{Reason: "missing user"}
	}
	m.Histories = append(m.Histories, h)
	return len(h.Communities), nil
}

func (m *MockAnalysisService) PutRecords(records []*models.PostingRecord) (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	return len(records), 0
}

func (m *MockAnalysisService) Run() (*models.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunCalls++
	return m.RunResult, m.RunErr
}

func (m *MockAnalysisService) Document() (*flow.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentCalls++
	return m.Doc, m.DocErr
}

func (m *MockAnalysisService) BuildSnapshot() (*flow.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	return m.Snap, m.SnapErr
}

func (m *MockAnalysisService) ShortestPath(source, target string) ([]string, error) {
	return m.Path, m.PathErr
}

func (m *MockAnalysisService) Generation() uint64 { return m.Gen }
func (m *MockAnalysisService) RecordCount() int   { return m.Records }
func (m *MockAnalysisService) UserCount() int     { return m.UsersTotal }
func (m *MockAnalysisService) SkippedCount() int  { return m.Skipped }
func (m *MockAnalysisService) Running() bool      { return m.RunningFlag }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable
// behavior. The zero value passes data through unchanged.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Close() {}
