package snapshot

import (
	"os"

	json "github.com/goccy/go-json"

	"mfd/internal/flow"
	"mfd/internal/providers"
	"mfd/internal/services"
	"mfd/internal/snapshot/interfaces"
)

// SnapshotManager persists the exported interchange envelope as a
// zstd-compressed file. Writes go through a temp file and an atomic rename so
// a crashed save never corrupts the previous snapshot.
type SnapshotManager struct {
	service    services.AnalysisServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, service services.AnalysisServiceInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (m *SnapshotManager) SaveToFile(fileName string) error {
	snap, err := m.service.BuildSnapshot()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile reads a previously persisted snapshot. A missing file is not
// an error; the daemon simply has no prior export.
func (m *SnapshotManager) LoadFromFile(fileName string) (*flow.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := m.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var snap flow.Snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *SnapshotManager) Close() {
	m.compressor.Close()
}
