package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"mfd/internal/models"
	"mfd/internal/providers"
)

// Loader reads the startup dataset produced by the external posting-history
// collector. CSV rows are user,community,post_count,first_seen,last_seen;
// JSON is an array of per-user community activity mappings. Rows that cannot
// be parsed are skipped and counted, never abort the load.
type Loader struct {
	logger providers.Logger
}

func NewLoader(logger providers.Logger) *Loader {
	return &Loader{logger: logger}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads records from path. An empty format is inferred from the file
// extension.
func (l *Loader) Load(path, format string) ([]*models.PostingRecord, int, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			format = "json"
		default:
			format = "csv"
		}
	}

	switch format {
	case "csv":
		return l.loadCSV(path)
	case "json":
		return l.loadJSON(path)
	default:
		return nil, 0, fmt.Errorf("unsupported input format %q", format)
	}
}

func (l *Loader) loadCSV(path string) ([]*models.PostingRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 5
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []*models.PostingRecord
	skipped := 0
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "user") {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			skipped++
			l.logger.Warnf(providers.TypeApp, "Skipping row %d of %s: %s", i+1, path, err)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func parseRow(row []string) (*models.PostingRecord, error) {
	count, err := cast.ToIntE(row[2])
	if err != nil {
		return nil, fmt.Errorf("bad post_count %q", row[2])
	}
	first, err := parseTime(row[3])
	if err != nil {
		return nil, err
	}
	last, err := parseTime(row[4])
	if err != nil {
		return nil, err
	}
	return &models.PostingRecord{
		User:      row[0],
		Community: row[1],
		PostCount: count,
		FirstSeen: first,
		LastSeen:  last,
	}, nil
}

func (l *Loader) loadJSON(path string) ([]*models.PostingRecord, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	var histories []*models.UserHistory
	if err := json.Unmarshal(data, &histories); err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	var records []*models.PostingRecord
	skipped := 0
	for _, h := range histories {
		if h == nil || h.User == "" {
			skipped++
			l.logger.Warnf(providers.TypeApp, "Skipping history without user in %s", path)
			continue
		}
		records = append(records, h.Records()...)
	}
	return records, skipped, nil
}

func parseTime(val string) (time.Time, error) {
	trimmed := strings.TrimSpace(val)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", val)
}
