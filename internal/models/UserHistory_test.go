package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHistory_RecordsSortedByCommunity(t *testing.T) {
	h := &UserHistory{
		User: "alice",
		Communities: map[string]*CommunityActivity{
			"loseit":  {PostCount: 4, FirstPostDate: day(15), LastPostDate: day(40)},
			"fitness": {PostCount: 7, FirstPostDate: day(0), LastPostDate: day(10)},
		},
	}

	recs := h.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "fitness", recs[0].Community)
	assert.Equal(t, "loseit", recs[1].Community)
	assert.Equal(t, "alice", recs[0].User)
	assert.Equal(t, day(15), recs[1].FirstSeen)
}

func TestUserHistory_SkipsNilActivity(t *testing.T) {
	h := &UserHistory{
		User: "alice",
		Communities: map[string]*CommunityActivity{
			"fitness": nil,
		},
	}
	assert.Empty(t, h.Records())
}
