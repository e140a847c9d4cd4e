package models

import "time"

// PostingRecord is one (user, community) activity observation. At most one
// record exists per pair; overlapping observations are merged by the store.
type PostingRecord struct {
	User      string    `json:"user"`
	Community string    `json:"community"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	PostCount int       `json:"post_count"`
}

func (r *PostingRecord) Validate() error {
	if r.User == "" {
		return &MalformedRecordError{User: r.User, Community: r.Community, Reason: "empty user"}
	}
	if r.Community == "" {
		return &MalformedRecordError{User: r.User, Community: r.Community, Reason: "empty community"}
	}
	if r.FirstSeen.IsZero() || r.LastSeen.IsZero() {
		return &MalformedRecordError{User: r.User, Community: r.Community, Reason: "missing timestamps"}
	}
	if r.FirstSeen.After(r.LastSeen) {
		return &MalformedRecordError{User: r.User, Community: r.Community, Reason: "first_seen after last_seen"}
	}
	if r.PostCount < 0 {
		return &MalformedRecordError{User: r.User, Community: r.Community, Reason: "negative post_count"}
	}
	return nil
}
