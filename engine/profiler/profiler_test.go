package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsAfterInterval(t *testing.T) {
	l, hook := test.NewNullLogger()
	common.SetLogger(l)
	t.Cleanup(func() { common.SetLogger(nil) })

	p := NewProfiler(time.Hour)
	assert.False(t, p.Tick(3))
	assert.Empty(t, hook.AllEntries())

	p.lastTime = time.Now().Add(-2 * time.Hour)
	require.True(t, p.Tick(5))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "profiler", entry.Data["component"])
	assert.Contains(t, entry.Data, "nodes_per_s")
	assert.Zero(t, p.frameCount)
	assert.Zero(t, p.nodeCount)
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler(0).updateInterval)
}
