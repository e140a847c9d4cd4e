package models

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a run has zero usable posting records after
// filtering. It is the only fatal condition in the pipeline.
var ErrEmptyInput = errors.New("no usable posting records")

// MalformedRecordError marks a PostingRecord that violates its invariants.
// Offending records are skipped and counted, never abort a load.
type MalformedRecordError struct {
	User      string
	Community string
	Reason    string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record for user %q in community %q: %s", e.User, e.Community, e.Reason)
}

// DataIntegrityError marks an edge/node inconsistency found while building
// the graph. Recovered locally by defaulting the category.
type DataIntegrityError struct {
	Community string
	Reason    string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("integrity issue for community %q: %s", e.Community, e.Reason)
}
