package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/sirupsen/logrus"
)

// Profiler tracks update rate, node throughput and memory statistics for a scene graph.
// Stats are written to the shared logger at a configurable interval.
type Profiler struct {
	frameCount     int
	nodeCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	log            *logrus.Entry
}

// NewProfiler creates a new Profiler that reports once per interval.
// A non-positive interval defaults to 1 second.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		memStats:       runtime.MemStats{},
		log:            common.Logger("profiler"),
	}
}

// Tick should be called once per graph update with the number of nodes that were visited.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: updates per second, nodes per second, heap usage, allocation rate,
// GC count/pause times and total memory.
//
// Parameters:
//   - nodes: the number of nodes updated since the previous tick
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(nodes int) bool {
	p.frameCount++
	p.nodeCount += nodes
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	seconds := elapsed.Seconds()
	ups := float64(p.frameCount) / seconds
	nps := float64(p.nodeCount) / seconds

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. Sys: process footprint obtained from the OS.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.log.WithFields(logrus.Fields{
		"ups":          ups,
		"nodes_per_s":  nps,
		"heap_mb":      allocMB,
		"alloc_mb_s":   allocRateMB,
		"gc":           gcCount,
		"gc_last_us":   lastPauseUs,
		"gc_max_us":    maxPauseUs,
		"sys_mb":       sysMB,
		"interval_sec": seconds,
	}).Info("scene stats")

	p.frameCount = 0
	p.nodeCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
