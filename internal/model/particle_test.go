package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wildstyl3r/knudsen/internal/geometry"
	"github.com/wildstyl3r/knudsen/internal/utils"
)

func TestNewParticleInsideTube(t *testing.T) {
	tube := geometry.NewTube(2, 0.3, 0.5)
	rng := rand.New(rand.NewSource(1))
	var vx, vy []float64
	for range 20000 {
		p := NewParticle(tube, 0.7, 2, Overrides{}, rng)
		assert.GreaterOrEqual(t, p.Position.X, 0.)
		assert.Less(t, p.Position.X, tube.Wavelength)
		assert.LessOrEqual(t, p.Position.Transverse(), tube.Radius(p.Position.X))
		vx = append(vx, p.Velocity.X)
		vy = append(vy, p.Velocity.Y)
	}
	mean, variance := utils.MeanAndVariance(vx, true)
	assert.InDelta(t, 0.7, mean, 0.05)
	assert.InDelta(t, 2, variance, 0.1)
	assert.InDelta(t, 0, utils.Average(vy), 0.05)
}

func TestNewParticleOverrides(t *testing.T) {
	tube := geometry.NewTube(1, 0.1, 0.5)
	free := NewParticle(tube, 0, 1, Overrides{}, rand.New(rand.NewSource(9)))
	pinned := NewParticle(tube, 0, 1, Overrides{X: ptr(0.25), VZ: ptr(-3)}, rand.New(rand.NewSource(9)))

	assert.Equal(t, 0.25, pinned.Position.X)
	assert.Equal(t, -3., pinned.Velocity.Z)
	// the remaining coordinates come from the same draws
	assert.Equal(t, free.Velocity.X, pinned.Velocity.X)
	assert.Equal(t, free.Velocity.Y, pinned.Velocity.Y)
	assert.InDelta(t, math.Atan2(free.Position.Z, free.Position.Y), math.Atan2(pinned.Position.Z, pinned.Position.Y), 1e-12)
}

func TestParticleAdvance(t *testing.T) {
	p := Particle{Position: Vec3{1, 0, -1}, Velocity: Vec3{2, 0.5, 1}}
	next := p.Advance(0.5)
	assert.Equal(t, Vec3{2, 0.25, -0.5}, next.Position)
	assert.Equal(t, p.Velocity, next.Velocity)
}
