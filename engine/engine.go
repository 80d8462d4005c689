// Package engine drives scene graphs at a fixed tick rate.
package engine

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/sirupsen/logrus"
)

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.Graph

	log *logrus.Entry
}

// Engine is the main entry point for running scenes.
// Each tick it calls the tick callback, then updates every registered graph in ascending key order.
type Engine interface {
	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called at the start of each tick, before the graphs
	// are updated. Use this for game logic, input processing and applying animation output.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Resize hands a new frame size to every registered graph.
	//
	// Parameters:
	//   - width, height: the frame size in pixels
	Resize(width, height int)

	// AddScene registers a graph at the given key. Graphs are updated in ascending key order.
	//
	// Parameters:
	//   - key: the update order key (lower updates first)
	//   - g: the graph to register
	AddScene(key int, g scene.Graph)

	// RemoveScene removes the graph at the given key.
	//
	// Parameters:
	//   - key: the key of the graph to remove
	RemoveScene(key int)

	// Scene retrieves the graph registered at the given key.
	// Returns nil if no graph exists at that key.
	//
	// Parameters:
	//   - key: the key of the graph to retrieve
	//
	// Returns:
	//   - scene.Graph: the graph at the key, or nil if not found
	Scene(key int) scene.Graph

	// Scenes returns a copy of all registered graphs keyed by update order.
	//
	// Returns:
	//   - map[int]scene.Graph: a copy of the scenes map
	Scenes() map[int]scene.Graph

	// Step runs a single tick with the given delta time on the calling goroutine.
	//
	// Parameters:
	//   - dt: the delta time in seconds
	Step(dt float32)

	// Run starts the tick loop and blocks until Quit is called.
	Run()

	// Quit signals the tick loop to stop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Graph),
		engineTickRate:  time.Second / 60,
		log:             common.Logger("engine"),
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.log.WithField("tick_rate", e.engineTickRate).Info("engine started")
	e.wg.Add(1)
	go e.handleEngine()
	e.wg.Wait()
	e.log.Info("engine stopped")
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate tick loop in its own goroutine and listens for dynamic rate
// changes via tickRateChannel. Exits when the quit channel is closed.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.log.WithField("panic", r).Error("tick loop recovered from panic")
			e.Quit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

func (e *engine) Step(dt float32) {
	e.mu.Lock()
	callback := e.tickCallback
	graphs := make([]scene.Graph, 0, len(e.scenes))
	for _, k := range slices.Sorted(maps.Keys(e.scenes)) {
		graphs = append(graphs, e.scenes[k])
	}
	e.mu.Unlock()

	if callback != nil {
		callback(dt)
	}
	for _, g := range graphs {
		g.Update(dt)
	}
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) Resize(width, height int) {
	size := common.Vec2{X: float32(width), Y: float32(height)}
	for _, g := range e.Scenes() {
		g.SetFrameSize(size)
	}
}

func (e *engine) AddScene(key int, g scene.Graph) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = g
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.scenes)
}
