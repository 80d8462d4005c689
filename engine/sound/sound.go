// Package sound implements the positional sound source and listener nodes. Playback happens in an
// audio backend reached through node.NativeWorld.
package sound

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// Type identifiers of the sound variants.
var (
	SoundTypeUUID    = uuid.MustParse("9a3b0f7d-2e9c-4b5f-ae6a-9f1e3a5b7c8d")
	ListenerTypeUUID = uuid.MustParse("0b4c1a8e-3f0d-4c6a-bf7b-0a2f4b6c8d9e")
)

// Status is the playback state of a sound source.
type Status uint8

const (
	Stopped Status = iota
	Playing
	Paused
)

// Sound is a positional sound source.
type Sound struct {
	node.Base
	// Buffer names the audio resource played by the source.
	Buffer  string
	Gain    float32
	Pitch   float32
	Looping bool
	Status  Status
	// Radius is the distance at which attenuation starts.
	Radius float32
}

// Listener is the point the scene is heard from. A graph normally holds exactly one.
type Listener struct {
	node.Base
}

var (
	_ node.Variant         = &Sound{}
	_ node.NativeSyncer    = &Sound{}
	_ node.TransformSyncer = &Sound{}
	_ node.Detacher        = &Sound{}
	_ node.Validator       = &Sound{}
	_ node.Variant         = &Listener{}
	_ node.TransformSyncer = &Listener{}
)

// NewSound creates a stopped source playing buffer at unit gain and pitch.
func NewSound(name, buffer string) *Sound {
	return &Sound{Base: node.NewBase(name), Buffer: buffer, Gain: 1, Pitch: 1, Radius: 10}
}

// NewListener creates a listener.
func NewListener(name string) *Listener {
	return &Listener{Base: node.NewBase(name)}
}

func (s *Sound) TypeUUID() uuid.UUID { return SoundTypeUUID }
func (s *Sound) TypeName() string    { return "Sound" }

func (s *Sound) Fields() []property.Field {
	return append(s.Base.Fields(),
		property.Value("buffer", &s.Buffer),
		property.Value("gain", &s.Gain),
		property.Value("pitch", &s.Pitch),
		property.Value("looping", &s.Looping),
		property.Value("status", &s.Status),
		property.Value("radius", &s.Radius),
	)
}

// Play starts or resumes playback.
func (s *Sound) Play() { s.Status = Playing }

// Pause suspends playback, keeping the position.
func (s *Sound) Pause() { s.Status = Paused }

// Stop ends playback.
func (s *Sound) Stop() { s.Status = Stopped }

func (s *Sound) SyncNative(self node.Handle, ctx *node.SyncContext) {
	if ctx.Sound != nil {
		ctx.Sound.SyncNative(self, s)
	}
}

func (s *Sound) SyncTransform(self node.Handle, global common.Matrix4, ctx *node.SyncContext) {
	if ctx.Sound != nil {
		ctx.Sound.SyncTransform(self, global)
	}
}

func (s *Sound) OnRemovedFromGraph(self node.Handle, ctx *node.SyncContext) {
	if ctx.Sound != nil {
		ctx.Sound.Remove(self)
	}
}

func (s *Sound) Validate(node.GraphView) []string {
	var problems []string
	if s.Buffer == "" {
		problems = append(problems, "sound has no buffer")
	}
	if s.Gain < 0 {
		problems = append(problems, fmt.Sprintf("gain must not be negative, got %g", s.Gain))
	}
	if s.Pitch <= 0 {
		problems = append(problems, fmt.Sprintf("pitch must be positive, got %g", s.Pitch))
	}
	return problems
}

func (l *Listener) TypeUUID() uuid.UUID { return ListenerTypeUUID }
func (l *Listener) TypeName() string    { return "Listener" }

func (l *Listener) SyncTransform(self node.Handle, global common.Matrix4, ctx *node.SyncContext) {
	if ctx.Sound != nil {
		ctx.Sound.SyncTransform(self, global)
	}
}
