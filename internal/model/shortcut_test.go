package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildstyl3r/knudsen/internal/geometry"
)

func TestCrossInnerBoreThroughAxis(t *testing.T) {
	tube := geometry.NewTube(1, 0.1, 0.5)
	p := Particle{Position: Vec3{0, 0.45, 0}, Velocity: Vec3{0.3, -1, 0}}
	crossing, err := CrossInnerBore(tube, p, 0.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, crossing.Time, 1e-12)
	assertVecInDelta(t, Vec3{0.255, -0.4, 0}, crossing.State.Position, 1e-12)
	assert.Equal(t, p.Velocity, crossing.State.Velocity)
}

func TestCrossInnerBoreOffAxisChord(t *testing.T) {
	tube := geometry.NewTube(1, 0.1, 0.5)
	p := Particle{Position: Vec3{0, 0.3, 0.35}, Velocity: Vec3{0, -2, 0}}
	crossing, err := CrossInnerBore(tube, p, 0.1)
	require.NoError(t, err)
	yFar := -math.Sqrt(0.4*0.4 - 0.35*0.35)
	assertVecInDelta(t, Vec3{0, yFar, 0.35}, crossing.State.Position, 1e-12)
	assert.InDelta(t, (0.3-yFar)/2, crossing.Time, 1e-12)
	assert.InDelta(t, tube.InnerRadius(), crossing.State.Position.Transverse(), 1e-12)
}

func TestCrossInnerBoreDegenerate(t *testing.T) {
	tube := geometry.NewTube(1, 0.1, 0.5)
	cases := []struct {
		name string
		p    Particle
	}{
		{"zero transverse velocity", Particle{Position: Vec3{0, 0.45, 0}, Velocity: Vec3{1, 0, 0}}},
		{"chord misses the bore", Particle{Position: Vec3{0, 0.45, 0}, Velocity: Vec3{0, 0, 1}}},
		{"starts inside the bore", Particle{Position: Vec3{0, 0.1, 0}, Velocity: Vec3{0, 1, 0}}},
		{"bore left behind", Particle{Position: Vec3{0, 0.45, 0}, Velocity: Vec3{0, 1, 0}}},
	}
	for _, c := range cases {
		_, err := CrossInnerBore(tube, c.p, 0.2)
		assert.ErrorIs(t, err, ErrDegenerateGeometry, c.name)
	}
}
