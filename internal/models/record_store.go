package models

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// PostingRecordStore is the normalized in-memory table of posting
// observations. It keeps one record per (user, community) pair, assigns a
// dense uint32 id per user and tracks distinct participants per community
// with bitmaps. Users and communities preserve first-seen order so every
// downstream stage stays deterministic.
// Thread-safe: the HTTP layer may ingest while the scheduler reads.
type PostingRecordStore struct {
	mu           sync.RWMutex
	users        []string
	userIDs      map[string]uint32
	byUser       map[string][]*PostingRecord
	byPair       map[string]map[string]*PostingRecord
	communities  []string
	participants map[string]*roaring.Bitmap
	skipped      int
	generation   uint64
}

func NewPostingRecordStore() *PostingRecordStore {
	return &PostingRecordStore{
		userIDs:      make(map[string]uint32),
		byUser:       make(map[string][]*PostingRecord),
		byPair:       make(map[string]map[string]*PostingRecord),
		participants: make(map[string]*roaring.Bitmap),
	}
}

// Add validates and inserts a record. A record for an already known
// (user, community) pair is merged: the interval widens and post counts sum.
// Malformed records are counted and returned as *MalformedRecordError.
func (s *PostingRecordStore) Add(rec *PostingRecord) error {
	if err := rec.Validate(); err != nil {
		s.mu.Lock()
		s.skipped++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, known := s.userIDs[rec.User]
	if !known {
		id = uint32(len(s.users))
		s.userIDs[rec.User] = id
		s.users = append(s.users, rec.User)
	}

	pairs, ok := s.byPair[rec.User]
	if !ok {
		pairs = make(map[string]*PostingRecord)
		s.byPair[rec.User] = pairs
	}

	if existing, ok := pairs[rec.Community]; ok {
		if rec.FirstSeen.Before(existing.FirstSeen) {
			existing.FirstSeen = rec.FirstSeen
		}
		if rec.LastSeen.After(existing.LastSeen) {
			existing.LastSeen = rec.LastSeen
		}
		existing.PostCount += rec.PostCount
	} else {
		stored := *rec
		pairs[rec.Community] = &stored
		s.byUser[rec.User] = append(s.byUser[rec.User], &stored)

		bitmap, ok := s.participants[rec.Community]
		if !ok {
			bitmap = roaring.New()
			s.participants[rec.Community] = bitmap
			s.communities = append(s.communities, rec.Community)
		}
		bitmap.Add(id)
	}

	s.generation++
	return nil
}

// Users returns all users in first-seen order.
func (s *PostingRecordStore) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// Records returns one user's records in insertion order.
func (s *PostingRecordStore) Records(user string) []*PostingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.byUser[user]
	out := make([]*PostingRecord, len(recs))
	for i, r := range recs {
		cp := *r
		out[i] = &cp
	}
	return out
}

// Communities returns all communities in first-seen order.
func (s *PostingRecordStore) Communities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.communities))
	copy(out, s.communities)
	return out
}

// ParticipantCount returns the number of distinct users ever active in the
// community.
func (s *PostingRecordStore) ParticipantCount(community string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bitmap, ok := s.participants[community]
	if !ok {
		return 0
	}
	return int(bitmap.GetCardinality())
}

func (s *PostingRecordStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *PostingRecordStore) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, recs := range s.byUser {
		total += len(recs)
	}
	return total
}

// SkippedCount reports how many malformed records were rejected.
func (s *PostingRecordStore) SkippedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// Generation increases on every successful insert. Derived results cache
// against it and rebuild wholesale when it moves.
func (s *PostingRecordStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
