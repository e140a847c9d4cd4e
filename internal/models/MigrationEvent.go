package models

import "time"

// MigrationEvent is one detected transition of a user's activity from one
// community to another. Immutable once emitted by the detector.
type MigrationEvent struct {
	User          string
	FromCommunity string
	ToCommunity   string
	Gap           time.Duration
	DetectedAt    time.Time
}
