// Package effects implements the sprite, decal and particle system nodes.
package effects

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// Type identifiers of the effect variants.
var (
	SpriteTypeUUID         = uuid.MustParse("1c5d2b9f-4a1e-4d7b-80c8-1b3a5c7d9e0f")
	DecalTypeUUID          = uuid.MustParse("2d6e3c0a-5b2f-4e8c-91d9-2c4b6d8e0f1a")
	ParticleSystemTypeUUID = uuid.MustParse("3e7f4d1b-6c3a-4f9d-a2ea-3d5c7e9f1a2b")
)

// Sprite is a camera-facing quad.
type Sprite struct {
	node.Base
	Size    float32
	Color   material.Color
	Texture *material.Texture
}

// Decal projects a texture onto the geometry inside its unit cube. Only geometry whose layer
// matches Layer receives the decal.
type Decal struct {
	node.Base
	Color   material.Color
	Layer   uint8
	Diffuse *material.Texture
}

// Particle is a single simulated particle, in the system's local space.
type Particle struct {
	Position common.Vec3
	Velocity common.Vec3
	Age      float32
	Lifetime float32
}

// ParticleSystem emits particles at a fixed rate. A system with a positive Lifetime dies once its
// Age reaches Lifetime and is then removed from the graph.
type ParticleSystem struct {
	node.Base
	Emitting bool
	// EmitRate is the number of particles spawned per second.
	EmitRate         float32
	MaxParticles     int
	ParticleLifetime float32
	InitialVelocity  common.Vec3
	Acceleration     common.Vec3
	// Lifetime of the whole system in seconds; zero or less lives forever.
	Lifetime  float32
	Age       float32
	Particles []Particle

	spawnDebt float32
}

var (
	_ node.Variant   = &Sprite{}
	_ node.Variant   = &Decal{}
	_ node.Variant   = &ParticleSystem{}
	_ node.Updater   = &ParticleSystem{}
	_ node.Mortal    = &ParticleSystem{}
	_ node.Validator = &ParticleSystem{}
)

// NewSprite creates a white sprite of the given size.
func NewSprite(name string, size float32) *Sprite {
	return &Sprite{Base: node.NewBase(name), Size: size, Color: material.White}
}

// NewDecal creates a white decal on layer 0.
func NewDecal(name string, diffuse *material.Texture) *Decal {
	return &Decal{Base: node.NewBase(name), Color: material.White, Diffuse: diffuse}
}

// NewParticleSystem creates an emitting system.
//
// Parameters:
//   - name: the node name
//   - rate: particles spawned per second
//   - particleLifetime: seconds each particle lives
//   - maxParticles: upper bound on live particles
//
// Returns:
//   - *ParticleSystem: the system
func NewParticleSystem(name string, rate, particleLifetime float32, maxParticles int) *ParticleSystem {
	return &ParticleSystem{
		Base:             node.NewBase(name),
		Emitting:         true,
		EmitRate:         rate,
		MaxParticles:     maxParticles,
		ParticleLifetime: particleLifetime,
		InitialVelocity:  common.NewVec3(0, 1, 0),
	}
}

func (s *Sprite) TypeUUID() uuid.UUID { return SpriteTypeUUID }
func (s *Sprite) TypeName() string    { return "Sprite" }

func (s *Sprite) Fields() []property.Field {
	return append(s.Base.Fields(),
		property.Value("size", &s.Size),
		property.Value("color", &s.Color),
	)
}

func (s *Sprite) LocalBoundingBox() common.AABB {
	h := s.Size / 2
	return common.AABB{Min: common.NewVec3(-h, -h, -h), Max: common.NewVec3(h, h, h)}
}

func (d *Decal) TypeUUID() uuid.UUID { return DecalTypeUUID }
func (d *Decal) TypeName() string    { return "Decal" }

func (d *Decal) Fields() []property.Field {
	return append(d.Base.Fields(),
		property.Value("color", &d.Color),
		property.Value("layer", &d.Layer),
	)
}

// LocalBoundingBox returns the unit projection cube.
func (d *Decal) LocalBoundingBox() common.AABB {
	return common.AABB{Min: common.NewVec3(-0.5, -0.5, -0.5), Max: common.NewVec3(0.5, 0.5, 0.5)}
}

func (p *ParticleSystem) TypeUUID() uuid.UUID { return ParticleSystemTypeUUID }
func (p *ParticleSystem) TypeName() string    { return "ParticleSystem" }

func (p *ParticleSystem) Fields() []property.Field {
	return append(p.Base.Fields(),
		property.Value("emitting", &p.Emitting),
		property.Value("emitRate", &p.EmitRate),
		property.Value("initialVelocity", &p.InitialVelocity),
		property.Value("acceleration", &p.Acceleration),
		property.ReadOnly("particleCount", func() any { return len(p.Particles) }),
	)
}

// LocalBoundingBox encloses the live particles.
func (p *ParticleSystem) LocalBoundingBox() common.AABB {
	box := common.EmptyAABB()
	for i := range p.Particles {
		box.AddPoint(p.Particles[i].Position)
	}
	return box
}

// Update ages the system, integrates and expires particles, then spawns new ones while emitting.
func (p *ParticleSystem) Update(ctx *node.UpdateContext) {
	dt := ctx.DeltaTime
	p.Age += dt

	live := p.Particles[:0]
	for _, pt := range p.Particles {
		pt.Age += dt
		if pt.Age >= pt.Lifetime {
			continue
		}
		pt.Velocity.X += p.Acceleration.X * dt
		pt.Velocity.Y += p.Acceleration.Y * dt
		pt.Velocity.Z += p.Acceleration.Z * dt
		pt.Position.X += pt.Velocity.X * dt
		pt.Position.Y += pt.Velocity.Y * dt
		pt.Position.Z += pt.Velocity.Z * dt
		live = append(live, pt)
	}
	p.Particles = live

	if !p.Emitting || !p.IsAlive() {
		p.spawnDebt = 0
		return
	}
	p.spawnDebt += p.EmitRate * dt
	for p.spawnDebt >= 1 && len(p.Particles) < p.MaxParticles {
		p.spawnDebt--
		p.Particles = append(p.Particles, Particle{Velocity: p.InitialVelocity, Lifetime: p.ParticleLifetime})
	}
	if len(p.Particles) >= p.MaxParticles {
		p.spawnDebt = 0
	}
}

// IsAlive reports whether the system's lifetime has not yet run out.
func (p *ParticleSystem) IsAlive() bool {
	return p.Lifetime <= 0 || p.Age < p.Lifetime
}

func (p *ParticleSystem) Validate(node.GraphView) []string {
	var problems []string
	if p.EmitRate < 0 {
		problems = append(problems, fmt.Sprintf("emit rate must not be negative, got %g", p.EmitRate))
	}
	if p.MaxParticles <= 0 {
		problems = append(problems, "max particles must be positive")
	}
	if p.ParticleLifetime <= 0 {
		problems = append(problems, "particle lifetime must be positive")
	}
	return problems
}
