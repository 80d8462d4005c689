package scene

import (
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/config"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
)

// GraphBuilderOption is a functional option for configuring a Graph.
// Use the With* functions to create options.
type GraphBuilderOption func(g *graph)

// WithApplyWorkers sets the number of worker goroutines used by ApplyAll.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of apply workers (minimum 1)
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithApplyWorkers(n int) GraphBuilderOption {
	return func(g *graph) {
		if n < 1 {
			n = 1
		}
		g.applyWorkers = n
	}
}

// WithProfiler enables the update profiler, which logs throughput and memory statistics once
// per interval.
//
// Parameters:
//   - interval: the reporting interval; zero uses one second
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithProfiler(interval time.Duration) GraphBuilderOption {
	return func(g *graph) {
		g.profilerEnabled = true
		g.profilerInterval = interval
	}
}

// WithPhysics sets the backend physics nodes mirror their state into.
//
// Parameters:
//   - w: the physics backend
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithPhysics(w node.NativeWorld) GraphBuilderOption {
	return func(g *graph) {
		g.physics = w
	}
}

// WithSound sets the backend sound nodes mirror their state into.
//
// Parameters:
//   - w: the audio backend
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithSound(w node.NativeWorld) GraphBuilderOption {
	return func(g *graph) {
		g.sound = w
	}
}

// WithFrameSize sets the initial frame size handed to update hooks.
//
// Parameters:
//   - size: the frame size in pixels
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithFrameSize(size common.Vec2) GraphBuilderOption {
	return func(g *graph) {
		g.frameSize = size
	}
}

// WithConfig applies the scene section of a loaded configuration.
//
// Parameters:
//   - cfg: the scene configuration
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithConfig(cfg config.SceneConfig) GraphBuilderOption {
	return func(g *graph) {
		if cfg.ApplyWorkers > 0 {
			WithApplyWorkers(cfg.ApplyWorkers)(g)
		}
		if cfg.ProfilerEnabled {
			WithProfiler(0)(g)
		}
	}
}
