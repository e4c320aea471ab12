package model

import (
	"fmt"
	"math/rand"

	"github.com/wildstyl3r/knudsen/internal/geometry"
	"github.com/wildstyl3r/knudsen/internal/utils"
)

type Particle struct {
	Position Vec3 // [m]
	Velocity Vec3 // [m s^-1]
}

// Advance moves the particle along a straight line for dt.
func (p Particle) Advance(dt float64) Particle {
	return Particle{Position: p.Position.AddScaled(p.Velocity, dt), Velocity: p.Velocity}
}

func (p Particle) String() string {
	return fmt.Sprintf("r=%v v=%v", p.Position, p.Velocity)
}

// Overrides pins any of the six initial coordinates; nil fields are sampled.
type Overrides struct {
	X, Y, Z    *float64
	VX, VY, VZ *float64
}

func pick(override *float64, sampled float64) float64 {
	if override != nil {
		return *override
	}
	return sampled
}

// NewParticle draws an initial state: x uniform over one wavelength, (y, z)
// uniform over the cross-section at x, velocity components normal with the
// given variance and flow added to vx.
// Every variate is drawn even when overridden so that fixing one coordinate
// does not shift the others.
func NewParticle(tube geometry.Tube, flow, variance float64, o Overrides, rng *rand.Rand) Particle {
	x := pick(o.X, rng.Float64()*tube.Wavelength)
	y, z := utils.UniformOnDisk(rng, tube.Radius(x))
	y, z = pick(o.Y, y), pick(o.Z, z)
	vx := utils.Normal(rng, flow, variance)
	vy := utils.Normal(rng, 0, variance)
	vz := utils.Normal(rng, 0, variance)
	return Particle{
		Position: Vec3{x, y, z},
		Velocity: Vec3{pick(o.VX, vx), pick(o.VY, vy), pick(o.VZ, vz)},
	}
}
