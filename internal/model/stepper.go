package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/wildstyl3r/knudsen/internal/constants"
	"github.com/wildstyl3r/knudsen/internal/geometry"
)

type StepKind int

const (
	FreeFlight StepKind = iota
	WallCollision
	InnerBoreShortcut
)

func (k StepKind) String() string {
	switch k {
	case FreeFlight:
		return "free flight"
	case WallCollision:
		return "wall collision"
	case InnerBoreShortcut:
		return "inner bore shortcut"
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

type StepOutcome struct {
	Kind       StepKind
	State      Particle
	Duration   float64
	Collisions []Collision
}

// at most this many bounces are resolved within a single step
const maxChainedCollisions = 64

// Stepper advances one particle at a time. It holds no per-particle state and
// may be shared between goroutines as long as Clock is safe for concurrent use.
type Stepper struct {
	Tube  geometry.Tube
	Clock func() time.Time
}

func NewStepper(tube geometry.Tube) *Stepper {
	return &Stepper{Tube: tube, Clock: time.Now}
}

// StepSize keeps a step well below a wavelength and the local radius.
func (s *Stepper) StepSize(p Particle) float64 {
	S := s.Tube.Wavelength
	return min(S/constants.StepFraction, S/(constants.StepFraction*p.Velocity.Norm()*s.Tube.Radius(p.Position.X)))
}

// Step advances p by dt, bouncing off the wall or skipping across the inner
// bore when the straight flight calls for it. remaining bounds how far a bore
// crossing may carry the particle.
func (s *Stepper) Step(p Particle, dt, remaining float64) (StepOutcome, error) {
	next := p.Advance(dt)
	if !s.Tube.Inside(next.Position.X, next.Position.Y, next.Position.Z, 0) {
		return s.collide(p, dt)
	}

	inner := s.Tube.InnerRadius()
	if inner > 0 && p.Position.Transverse() >= inner && next.Position.Transverse() < inner {
		crossing, err := CrossInnerBore(s.Tube, p, dt)
		if err != nil {
			return StepOutcome{}, err
		}
		if crossing.Time > remaining {
			return StepOutcome{Kind: InnerBoreShortcut, State: p.Advance(remaining), Duration: remaining}, nil
		}
		return StepOutcome{Kind: InnerBoreShortcut, State: crossing.State, Duration: crossing.Time}, nil
	}

	return StepOutcome{Kind: FreeFlight, State: next, Duration: dt}, nil
}

func (s *Stepper) collide(p Particle, dt float64) (StepOutcome, error) {
	outcome := StepOutcome{Kind: WallCollision, Duration: dt}
	state, elapsed := p, 0.
	for {
		c, err := ResolveCollision(s.Tube, state, dt-elapsed)
		if err != nil {
			return outcome, err
		}
		c.Time += elapsed
		outcome.Collisions = append(outcome.Collisions, c)
		final := c.Final.Position
		if s.Tube.Inside(final.X, final.Y, final.Z, 0) {
			outcome.State = c.Final
			return outcome, nil
		}
		if len(outcome.Collisions) == maxChainedCollisions {
			return outcome, fmt.Errorf("%w: %d bounces within a step of %g", ErrNumericalDivergence, maxChainedCollisions, dt)
		}
		// the rest of the step leaves the tube again: bounce from the impact point
		elapsed = c.Time
		state = Particle{Position: c.Point, Velocity: c.Velocity}
	}
}

func (s *Stepper) sample(collision int, t float64, p Particle) CollisionEvent {
	return CollisionEvent{
		Collision: collision,
		Time:      t,
		Position:  p.Position,
		Velocity:  p.Velocity,
		EmittedAt: s.Clock(),
	}
}

// Simulate flies initial for duration and records the initial state, every
// wall impact and the final state.
func (s *Stepper) Simulate(index int, initial Particle, duration float64) (EventStream, error) {
	stream := EventStream{Particle: index}
	fail := func(collision int, t float64, p Particle, err error) (EventStream, error) {
		return stream, &SimulationError{Particle: index, Collision: collision, Time: t, State: p, Wrapped: err}
	}

	if err := s.Tube.Validate(); err != nil {
		return fail(0, 0, initial, fmt.Errorf("%w: %w", ErrConfiguration, err))
	}
	if !(duration > 0) {
		return fail(0, 0, initial, fmt.Errorf("%w: duration must be positive, got %g", ErrConfiguration, duration))
	}
	if !initial.Position.IsValid() || !initial.Velocity.IsValid() {
		return fail(0, 0, initial, fmt.Errorf("%w: initial state is not finite", ErrConfiguration))
	}
	r := initial.Position
	if !s.Tube.Inside(r.X, r.Y, r.Z, constants.WallTolerance) {
		return fail(0, 0, initial, fmt.Errorf("%w: initial position lies beyond the wall radius %g", ErrConfiguration, s.Tube.Radius(r.X)))
	}

	collision := 0
	stream.emit(s.sample(collision, 0, initial))

	p, elapsed := initial, 0.
	for elapsed < duration {
		remaining := duration - elapsed
		dt := min(s.StepSize(p), remaining)
		outcome, err := s.Step(p, dt, remaining)
		if err != nil {
			return fail(collision, elapsed, p, err)
		}
		for _, c := range outcome.Collisions {
			collision++
			impact := Particle{Position: c.Point, Velocity: c.Velocity}
			stream.emit(s.sample(collision, min(elapsed+c.Time, duration), impact))
		}
		p = outcome.State
		if outcome.Duration >= remaining {
			elapsed = duration
		} else if elapsed+outcome.Duration > elapsed {
			elapsed += outcome.Duration
		} else {
			return fail(collision, elapsed, p, fmt.Errorf("%w: step %g vanishes at t=%g", ErrNumericalDivergence, outcome.Duration, elapsed))
		}
	}

	collision++
	stream.emit(s.sample(collision, duration, p))
	stream.close()
	return stream, nil
}

// SimulateParticle samples an initial state and flies it through tube for duration.
func SimulateParticle(tube geometry.Tube, flow, variance, duration float64, overrides Overrides, rng *rand.Rand) (EventStream, error) {
	return NewStepper(tube).Simulate(0, NewParticle(tube, flow, variance, overrides, rng), duration)
}
