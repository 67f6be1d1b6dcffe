package leaderboard_test

import (
	"bytes"
	"testing"

	"github.com/robalyx/turbo/internal/bot/builder/leaderboard"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderEmpty(t *testing.T) {
	t.Parallel()

	msg := leaderboard.NewBuilder(nil, nil, nil).Build().Build()

	assert.Equal(t, constants.NoLeaderboardMessage, msg.Content)
	assert.Empty(t, msg.Files)
}

func TestBuilderLines(t *testing.T) {
	t.Parallel()

	entries := []leveling.Entry{
		{UserID: "1", PointRecord: storage.PointRecord{Points: 16, Level: 4}},
		{UserID: "2", PointRecord: storage.PointRecord{Points: 3, Level: 1}},
	}

	msg := leaderboard.NewBuilder(entries, []string{"alice", ""}, bytes.NewBufferString("png")).Build().Build()

	assert.Equal(t,
		"**🏆 Leaderboard 🏆**\n1. alice: 16 points (Level 4)\n2. [Unknown User]: 3 points (Level 1)\n",
		msg.Content)
	require.Len(t, msg.Files, 1)
	assert.Equal(t, constants.LeaderboardFile, msg.Files[0].Name)
}
