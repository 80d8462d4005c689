package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/config"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithTickCallback sets the function called at the start of every tick.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithScene registers a graph at the given key during engine construction.
// Graphs are updated in ascending key order each tick.
//
// Parameters:
//   - key: the update order key (lower updates first)
//   - g: the graph to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, g scene.Graph) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = g
	}
}

// WithConfig applies the scene section of a loaded configuration to the engine.
func WithConfig(cfg config.SceneConfig) EngineBuilderOption {
	return WithTickRate(cfg.TickRate)
}
