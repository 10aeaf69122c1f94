package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routerwatch/internal/models"
)

func TestTrafficStats(t *testing.T) {
	stats := NewTrafficStats()
	stats.AddFlows([]models.FlowRecord{
		{MAC: "aa:bb:cc:dd:ee:01", IP: "10.0.0.1", Connections: 2, DownloadBytes: 100, UploadBytes: 50},
		{MAC: "aa:bb:cc:dd:ee:02", IP: "10.0.0.2", Connections: 1, DownloadBytes: 500, UploadBytes: 0},
		{MAC: "aa:bb:cc:dd:ee:03", IP: "10.0.0.3", Connections: 5, DownloadBytes: 75, UploadBytes: 75},
	})
	stats.AddFlows([]models.FlowRecord{
		{MAC: "aa:bb:cc:dd:ee:01", IP: "10.0.0.1", Connections: 1, DownloadBytes: 10, UploadBytes: 0},
	})

	assert.Equal(t, int64(810), stats.TotalBytes())
	assert.Equal(t, int64(9), stats.TotalConnections())

	top := stats.TopTalkers(10)
	require.Len(t, top, 3)
	assert.Equal(t, "10.0.0.2", top[0].IP)
	assert.Equal(t, "10.0.0.1", top[1].IP)
	assert.Equal(t, int64(160), top[1].Bytes())
	assert.Equal(t, int64(3), top[1].Connections)
	assert.Equal(t, "10.0.0.3", top[2].IP)

	assert.Len(t, stats.TopTalkers(1), 1)
}

func TestTopTalkersTieOrder(t *testing.T) {
	stats := NewTrafficStats()
	stats.AddFlows([]models.FlowRecord{
		{IP: "10.0.0.9", MAC: "m9", DownloadBytes: 10},
		{IP: "10.0.0.4", MAC: "m4", DownloadBytes: 10},
	})

	top := stats.TopTalkers(2)
	require.Len(t, top, 2)
	assert.Equal(t, "10.0.0.4", top[0].IP)
	assert.Equal(t, "10.0.0.9", top[1].IP)
}
