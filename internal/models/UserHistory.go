package models

import (
	"sort"
	"time"
)

// CommunityActivity is one community's slice of a user's posting history,
// as delivered by the external posting-history source.
type CommunityActivity struct {
	PostCount     int       `json:"post_count"`
	FirstPostDate time.Time `json:"first_post_date"`
	LastPostDate  time.Time `json:"last_post_date"`
}

// UserHistory is the ingest payload: one user's activity across communities.
type UserHistory struct {
	User        string                        `json:"user"`
	Communities map[string]*CommunityActivity `json:"communities"`
}

// Records flattens the history into posting records, ordered by community
// name so repeated ingests of the same payload stay deterministic.
func (h *UserHistory) Records() []*PostingRecord {
	names := make([]string, 0, len(h.Communities))
	for name := range h.Communities {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]*PostingRecord, 0, len(names))
	for _, name := range names {
		activity := h.Communities[name]
		if activity == nil {
			continue
		}
		records = append(records, &PostingRecord{
			User:      h.User,
			Community: name,
			FirstSeen: activity.FirstPostDate,
			LastSeen:  activity.LastPostDate,
			PostCount: activity.PostCount,
		})
	}
	return records
}
