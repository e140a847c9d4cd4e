package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func record(user, community string, first, last, posts int) *PostingRecord {
	return &PostingRecord{
		User:      user,
		Community: community,
		FirstSeen: day(first),
		LastSeen:  day(last),
		PostCount: posts,
	}
}

func TestAdd_SingleRecord(t *testing.T) {
	s := NewPostingRecordStore()
	require.NoError(t, s.Add(record("alice", "fitness", 0, 10, 5)))

	assert.Equal(t, 1, s.RecordCount())
	assert.Equal(t, []string{"alice"}, s.Users())
	assert.Equal(t, []string{"fitness"}, s.Communities())
}

func TestAdd_MergesSamePair(t *testing.T) {
	s := NewPostingRecordStore()
	require.NoError(t, s.Add(record("alice", "fitness", 5, 10, 3)))
	require.NoError(t, s.Add(record("alice", "fitness", 0, 20, 4)))

	recs := s.Records("alice")
	require.Len(t, recs, 1)
	assert.Equal(t, day(0), recs[0].FirstSeen)
	assert.Equal(t, day(20), recs[0].LastSeen)
	assert.Equal(t, 7, recs[0].PostCount)
}

func TestAdd_MalformedFirstAfterLast(t *testing.T) {
	s := NewPostingRecordStore()
	err := s.Add(record("alice", "fitness", 10, 0, 3))

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 0, s.RecordCount())
	assert.Equal(t, 1, s.SkippedCount())
}

func TestAdd_MalformedNegativePostCount(t *testing.T) {
	s := NewPostingRecordStore()
	err := s.Add(record("alice", "fitness", 0, 10, -1))
	assert.Error(t, err)
	assert.Equal(t, 1, s.SkippedCount())
}

func TestAdd_MalformedEmptyFields(t *testing.T) {
	s := NewPostingRecordStore()
	assert.Error(t, s.Add(record("", "fitness", 0, 10, 3)))
	assert.Error(t, s.Add(record("alice", "", 0, 10, 3)))
	assert.Error(t, s.Add(&PostingRecord{User: "alice", Community: "fitness", PostCount: 3}))
	assert.Equal(t, 3, s.SkippedCount())
}

func TestUsers_PreservesInsertionOrder(t *testing.T) {
	s := NewPostingRecordStore()
	require.NoError(t, s.Add(record("carol", "fitness", 0, 5, 3)))
	require.NoError(t, s.Add(record("alice", "loseit", 0, 5, 3)))
	require.NoError(t, s.Add(record("bob", "keto", 0, 5, 3)))
	require.NoError(t, s.Add(record("alice", "fitness", 6, 9, 3)))

	assert.Equal(t, []string{"carol", "alice", "bob"}, s.Users())
	assert.Equal(t, []string{"fitness", "loseit", "keto"}, s.Communities())
}

func TestParticipantCount_DistinctUsers(t *testing.T) {
	s := NewPostingRecordStore()
	require.NoError(t, s.Add(record("alice", "fitness", 0, 5, 3)))
	require.NoError(t, s.Add(record("bob", "fitness", 1, 6, 3)))
	// Merge for an existing pair must not double-count alice.
	require.NoError(t, s.Add(record("alice", "fitness", 7, 9, 2)))

	assert.Equal(t, 2, s.ParticipantCount("fitness"))
	assert.Equal(t, 0, s.ParticipantCount("unknown"))
}

func TestGeneration_MovesOnInsertOnly(t *testing.T) {
	s := NewPostingRecordStore()
	before := s.Generation()
	require.Error(t, s.Add(record("alice", "fitness", 10, 0, 3)))
	assert.Equal(t, before, s.Generation())

	require.NoError(t, s.Add(record("alice", "fitness", 0, 10, 3)))
	assert.Greater(t, s.Generation(), before)
}

func TestRecords_ReturnsCopies(t *testing.T) {
	s := NewPostingRecordStore()
	require.NoError(t, s.Add(record("alice", "fitness", 0, 10, 3)))

	recs := s.Records("alice")
	recs[0].PostCount = 999

	fresh := s.Records("alice")
	assert.Equal(t, 3, fresh[0].PostCount)
}
