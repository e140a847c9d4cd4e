package flow

import (
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"mfd/internal/models"
)

const monthDays = 30.0

type pairKey struct {
	from string
	to   string
}

type pairAccumulator struct {
	users    *roaring.Bitmap
	gaps     []float64
	earliest time.Time
	latest   time.Time
	count    int
}

// Aggregate collapses migration events into one weighted edge per ordered
// (from, to) pair. Value counts distinct contributing users via bitmaps over
// interned user ids. Edge order is the order each pair was first seen, so
// identical input yields identical output.
func Aggregate(events []*models.MigrationEvent) []*models.FlowEdge {
	userIDs := make(map[string]uint32)
	acc := make(map[pairKey]*pairAccumulator)
	var order []pairKey

	for _, ev := range events {
		id, ok := userIDs[ev.User]
		if !ok {
			id = uint32(len(userIDs))
			userIDs[ev.User] = id
		}

		key := pairKey{from: ev.FromCommunity, to: ev.ToCommunity}
		pa, ok := acc[key]
		if !ok {
			pa = &pairAccumulator{users: roaring.New(), earliest: ev.DetectedAt, latest: ev.DetectedAt}
			acc[key] = pa
			order = append(order, key)
		}

		pa.users.Add(id)
		pa.gaps = append(pa.gaps, gapDays(ev.Gap))
		pa.count++
		if ev.DetectedAt.Before(pa.earliest) {
			pa.earliest = ev.DetectedAt
		}
		if ev.DetectedAt.After(pa.latest) {
			pa.latest = ev.DetectedAt
		}
	}

	edges := make([]*models.FlowEdge, 0, len(order))
	for _, key := range order {
		pa := acc[key]
		edges = append(edges, &models.FlowEdge{
			Source:            key.from,
			Target:            key.to,
			Value:             int(pa.users.GetCardinality()),
			AvgGap:            mean(pa.gaps),
			MedianGap:         median(pa.gaps),
			MinGap:            minOf(pa.gaps),
			MaxGap:            maxOf(pa.gaps),
			MigrationVelocity: velocity(pa.count, pa.earliest, pa.latest),
		})
	}
	return edges
}

// Summarize computes run-wide gap statistics across all events.
func Summarize(events []*models.MigrationEvent) *models.SummaryStats {
	if len(events) == 0 {
		return &models.SummaryStats{}
	}
	gaps := make([]float64, len(events))
	for i, ev := range events {
		gaps[i] = gapDays(ev.Gap)
	}
	return &models.SummaryStats{
		AvgMigrationTime:    mean(gaps),
		MedianMigrationTime: median(gaps),
		FastestMigration:    minOf(gaps),
		SlowestMigration:    maxOf(gaps),
		TotalMigrations:     len(events),
	}
}

// velocity is events per 30-day month across the pair's observation span.
// A zero span is treated as an instantaneous burst.
func velocity(count int, earliest, latest time.Time) float64 {
	spanDays := latest.Sub(earliest).Hours() / 24
	if spanDays <= 0 {
		return float64(count)
	}
	return float64(count) / (spanDays / monthDays)
}

func gapDays(gap time.Duration) float64 {
	return gap.Hours() / 24
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
