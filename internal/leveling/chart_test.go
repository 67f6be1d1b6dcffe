package leveling_test

import (
	"bytes"
	"testing"

	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderChart(t *testing.T) {
	t.Parallel()

	entries := []leveling.Entry{
		{UserID: "1", PointRecord: storage.PointRecord{Points: 16, Level: 4}},
		{UserID: "2", PointRecord: storage.PointRecord{Points: 4, Level: 2}},
		{UserID: "3", PointRecord: storage.PointRecord{Points: 1, Level: 1}},
	}

	buf, err := leveling.RenderChart(entries, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestRenderChartSingleEntry(t *testing.T) {
	t.Parallel()

	entries := []leveling.Entry{
		{UserID: "1", PointRecord: storage.PointRecord{Points: 1, Level: 1}},
	}

	buf, err := leveling.RenderChart(entries, nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestRenderChartEmpty(t *testing.T) {
	t.Parallel()

	_, err := leveling.RenderChart(nil, nil)
	require.ErrorIs(t, err, leveling.ErrNoChartData)
}
