package flow

import (
	"sort"
	"time"

	"mfd/internal/models"
	"mfd/internal/structures"
)

// Detector scans one user's community activity ordered by time and emits
// discrete migration events.
//
// A community is active from first_seen until last_seen + inactivityWindow.
// A migration A→B requires B's first post strictly after A's last post, no
// overlap between the two active intervals (concurrent participation is not
// migration) and a gap inside [minGap, maxGap]. Every qualifying
// (ended, begun) pair produces a separate event; no best-match heuristic is
// applied, so one departure can fan out to several destinations.
type Detector struct {
	inactivityWindow time.Duration
	minGap           time.Duration
	maxGap           time.Duration
	minPosts         int
}

func NewDetector(conf *structures.Config) *Detector {
	return &Detector{
		inactivityWindow: time.Duration(conf.Detector.InactivityWindowDays) * 24 * time.Hour,
		minGap:           time.Duration(conf.Detector.MinGapDays) * 24 * time.Hour,
		maxGap:           time.Duration(conf.Detector.MaxGapDays) * 24 * time.Hour,
		minPosts:         conf.Detector.MinPostsThreshold,
	}
}

// Detect emits all migration events for one user's records. Records below the
// minimum post threshold are excluded entirely. A user active in a single
// community emits nothing. Events outside the gap bounds are dropped, not
// errored.
func (d *Detector) Detect(records []*models.PostingRecord) []*models.MigrationEvent {
	active := make([]*models.PostingRecord, 0, len(records))
	for _, rec := range records {
		if rec.PostCount < d.minPosts {
			continue
		}
		active = append(active, rec)
	}
	if len(active) < 2 {
		return nil
	}

	sort.SliceStable(active, func(i, j int) bool {
		if !active[i].FirstSeen.Equal(active[j].FirstSeen) {
			return active[i].FirstSeen.Before(active[j].FirstSeen)
		}
		return active[i].Community < active[j].Community
	})

	var events []*models.MigrationEvent
	for _, from := range active {
		activeEnd := from.LastSeen.Add(d.inactivityWindow)
		for _, to := range active {
			if to.Community == from.Community {
				continue
			}
			if !to.FirstSeen.After(from.LastSeen) {
				continue
			}
			// Overlapping active intervals mean concurrent participation.
			if to.FirstSeen.Before(activeEnd) {
				continue
			}
			gap := to.FirstSeen.Sub(from.LastSeen)
			if gap < d.minGap || gap > d.maxGap {
				continue
			}
			events = append(events, &models.MigrationEvent{
				User:          from.User,
				FromCommunity: from.Community,
				ToCommunity:   to.Community,
				Gap:           gap,
				DetectedAt:    to.FirstSeen,
			})
		}
	}
	return events
}
