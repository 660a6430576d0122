package engine

import (
	"math/rand"
	"time"
)

// Defaults for zero Config fields.
const (
	DefaultRadius   = 12.0
	DefaultMass     = 1.0
	DefaultMaxSpeed = 2.5
)

// VelocityFn produces a particle's initial velocity from its accepted
// position. Structured fields live in internal/field; nil means uniform
// components in [-MaxSpeed, +MaxSpeed].
type VelocityFn func(pos Vec2, rng *rand.Rand) Vec2

// Spec overrides radius, mass or color for one particle. Zero fields
// fall back to the Config defaults.
type Spec struct {
	Radius float64
	Mass   float64
	Color  string
}

// Config describes a world to build. Zero-valued defaults are filled in
// by NewWorld; Width, Height and Count have none and must be set.
type Config struct {
	Width    float64
	Height   float64
	Count    int
	Radius   float64
	Mass     float64
	MaxSpeed float64
	Seed     int64 // 0 seeds from the wall clock
	Palette  []string
	Velocity VelocityFn
	Specs    []Spec // per-index overrides, optional
}

func (c *Config) normalize() {
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	if c.Mass == 0 {
		c.Mass = DefaultMass
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = DefaultMaxSpeed
	}
	if len(c.Palette) == 0 {
		c.Palette = DefaultPalette
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidBounds
	}
	if c.Count < 0 {
		return ErrInvalidCount
	}
	if c.Radius <= 0 {
		return ErrNonPositiveRadius
	}
	if c.Mass <= 0 {
		return ErrNonPositiveMass
	}
	return nil
}

// spec resolves the effective radius/mass/color for particle i.
func (c Config) spec(i int) Spec {
	s := Spec{Radius: c.Radius, Mass: c.Mass, Color: c.Palette[i%len(c.Palette)]}
	if i < len(c.Specs) {
		o := c.Specs[i]
		if o.Radius > 0 {
			s.Radius = o.Radius
		}
		if o.Mass > 0 {
			s.Mass = o.Mass
		}
		if o.Color != "" {
			s.Color = o.Color
		}
	}
	return s
}

func (c Config) velocity(pos Vec2, rng *rand.Rand) Vec2 {
	if c.Velocity != nil {
		return c.Velocity(pos, rng)
	}
	return Vec2{
		(rng.Float64() - 0.5) * 2 * c.MaxSpeed,
		(rng.Float64() - 0.5) * 2 * c.MaxSpeed,
	}
}

// World owns the population and the arena bounds. All mutation happens
// through Advance on the host's frame tick; the population never grows
// or shrinks during a run.
type World struct {
	width   float64
	height  float64
	bodies  []Particle
	initial []Particle
	scratch []Particle
	rng     *rand.Rand
	pointer *Vec2
	frame   int
}

// NewWorld builds a world with cfg.Count particles placed by rejection
// sampling. The placement error wraps ErrPlacementExhausted when the
// arena is too dense to hold the population.
func NewWorld(cfg Config) (*World, error) {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bodies, err := populate(rng, cfg)
	if err != nil {
		return nil, err
	}

	w := &World{
		width:  cfg.Width,
		height: cfg.Height,
		bodies: bodies,
		rng:    rng,
	}
	w.initial = append([]Particle(nil), bodies...)
	return w, nil
}

// NewWorldWith builds a world from explicit bodies, bypassing placement.
// Bodies may overlap (the first frames resolve them); radius and mass
// are still validated.
func NewWorldWith(width, height float64, bodies []Particle) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidBounds
	}
	for _, p := range bodies {
		if p.Radius <= 0 {
			return nil, ErrNonPositiveRadius
		}
		if p.Mass <= 0 {
			return nil, ErrNonPositiveMass
		}
	}

	w := &World{
		width:  width,
		height: height,
		bodies: append([]Particle(nil), bodies...),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	w.initial = append([]Particle(nil), w.bodies...)
	return w, nil
}

// FrameInfo reports what one Advance did.
type FrameInfo struct {
	Frame      int
	Collisions int // overlapping pairs resolved
	WallHits   int // velocity components inverted at the walls
}

// Advance performs exactly one frame of simulation.
//
// Phase one computes every particle's post-collision velocity against a
// snapshot of the frame's start state, so the pass order cannot leak
// updated state into later comparisons, and commits the velocities.
// Phase two reflects velocities at the walls and integrates positions.
// Highlight state is recomputed last from the current pointer.
func (w *World) Advance() FrameInfo {
	info := FrameInfo{}

	prev := w.snapshotScratch()
	for i := range w.bodies {
		vel := prev[i].Vel
		for j := range prev {
			if j == i {
				continue
			}
			if !prev[i].Overlaps(prev[j]) {
				continue
			}
			a := prev[i]
			a.Vel = vel
			if next, _, resolved := Resolve(a, prev[j]); resolved {
				vel = next
				if j > i {
					info.Collisions++
				}
			}
		}
		w.bodies[i].Vel = vel
	}

	for i := range w.bodies {
		p := &w.bodies[i]
		if p.Pos.X+p.Radius > w.width || p.Pos.X-p.Radius < 0 {
			p.Vel.X = -p.Vel.X
			info.WallHits++
		}
		if p.Pos.Y+p.Radius > w.height || p.Pos.Y-p.Radius < 0 {
			p.Vel.Y = -p.Vel.Y
			info.WallHits++
		}
		p.Pos = p.Pos.Add(p.Vel)
	}

	w.frame++
	info.Frame = w.frame
	w.refreshHighlights()
	return info
}

// Resize swaps the arena bounds. Bodies are not repositioned; the next
// frame's boundary checks use the new bounds. Non-positive dimensions
// are ignored.
func (w *World) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width = width
	w.height = height
}

// Reset restores the exact initial population and frame counter.
func (w *World) Reset() {
	w.bodies = w.bodies[:0]
	w.bodies = append(w.bodies, w.initial...)
	w.frame = 0
	w.refreshHighlights()
}

// PointAt sets the pointer position used to derive highlight state. The
// pointer has no physical effect.
func (w *World) PointAt(p Vec2) {
	v := p
	w.pointer = &v
	w.refreshHighlights()
}

// ClearPointer removes the pointer; no particle stays highlighted.
func (w *World) ClearPointer() {
	w.pointer = nil
	w.refreshHighlights()
}

func (w *World) refreshHighlights() {
	for i := range w.bodies {
		w.bodies[i].Highlight = w.pointer != nil && w.bodies[i].ContainsPoint(*w.pointer)
	}
}

func (w *World) Bounds() (width, height float64) {
	return w.width, w.height
}

func (w *World) Count() int {
	return len(w.bodies)
}

func (w *World) Frame() int {
	return w.frame
}

// Snapshot returns a fresh copy of the population, safe to read while
// the world advances past it.
func (w *World) Snapshot() []Particle {
	return append([]Particle(nil), w.bodies...)
}

// SnapshotInto copies the population into dst, reusing its capacity.
// Hosts that render every frame keep one buffer and refill it.
func (w *World) SnapshotInto(dst []Particle) []Particle {
	return append(dst[:0], w.bodies...)
}

// TotalKineticEnergy sums 0.5 * m * |v|^2 over the population. Elastic
// collisions and wall reflections both preserve it.
func (w *World) TotalKineticEnergy() float64 {
	total := 0.0
	for i := range w.bodies {
		total += w.bodies[i].KineticEnergy()
	}
	return total
}

// TotalMomentum sums m * v over the population. Wall reflections flip
// single components, so only particle collisions preserve this one.
func (w *World) TotalMomentum() Vec2 {
	var total Vec2
	for i := range w.bodies {
		total = total.Add(w.bodies[i].Momentum())
	}
	return total
}

func (w *World) snapshotScratch() []Particle {
	w.scratch = append(w.scratch[:0], w.bodies...)
	return w.scratch
}
