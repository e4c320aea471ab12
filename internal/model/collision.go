package model

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/knudsen/internal/constants"
	"github.com/wildstyl3r/knudsen/internal/geometry"
	"github.com/wildstyl3r/knudsen/internal/utils"
)

// Collision describes a specular bounce off the wall during a step.
type Collision struct {
	Time     float64 // since the start of the step
	Point    Vec3
	Normal   Vec3 // outward
	Incoming Vec3
	Velocity Vec3     // after reflection
	Final    Particle // after the rest of the step
}

// wallGap is radius(x(t)) - |(y(t), z(t))| along the straight flight of p:
// positive inside the tube, negative beyond the wall.
func wallGap(tube geometry.Tube, p Particle) func(float64) float64 {
	return func(t float64) float64 {
		r := p.Position.AddScaled(p.Velocity, t)
		return tube.Radius(r.X) - r.Transverse()
	}
}

// CollisionTime finds the first time within [0, dt] at which the flight of p
// crosses the wall. The returned time is on the inner side of the crossing,
// no farther than SolverTolerance*dt from it.
func CollisionTime(tube geometry.Tube, p Particle, dt float64) (float64, error) {
	gap := wallGap(tube, p)
	a, b, err := utils.FirstCrossing(gap, 0, dt, constants.BracketSamples, constants.BracketRefinements)
	if err != nil {
		return 0, fmt.Errorf("%w: no wall crossing within %g: %w", ErrNumericalDivergence, dt, err)
	}
	inside, _, err := utils.BinarySearch(func(t float64) bool {
		return gap(t) < 0
	}, a, b, constants.SolverTolerance*dt, constants.SolverMaxIterations)
	if err != nil {
		return 0, fmt.Errorf("%w: impact time in [%g, %g]: %w", ErrNumericalDivergence, a, b, err)
	}
	return inside, nil
}

// WallTangents returns, at a point on the wall, the tangent of the wall profile
// in the plane through the axis and the tangent of the cross-section circle.
func WallTangents(tube geometry.Tube, point Vec3) (wall, circle Vec3) {
	rc := tube.Radius(point.X)
	m := tube.Slope(point.X)
	norm := math.Sqrt(math.FMA(m, m, 1.))
	cosTheta, sinTheta := 1./norm, m/norm
	wall = Vec3{cosTheta, sinTheta * point.Y / rc, sinTheta * point.Z / rc}

	if point.Z == 0 {
		// vertical tangent, dz/dy is unbounded
		circle = Vec3{0, 0, math.Copysign(1, point.Y)}
	} else {
		k := -point.Y / point.Z
		kNorm := math.Sqrt(math.FMA(k, k, 1.))
		orientation := -math.Copysign(1, point.Z)
		circle = Vec3{0, orientation / kNorm, orientation * k / kNorm}
	}
	return
}

// WallNormal is the outward unit normal of the wall at point.
func WallNormal(tube geometry.Tube, point Vec3) Vec3 {
	wall, circle := WallTangents(tube, point)
	return circle.Cross(wall).Normalize()
}

// Reflect mirrors v about the plane with unit normal n.
func Reflect(v, n Vec3) Vec3 {
	return v.AddScaled(n, -2.*v.Dot(n))
}

// ResolveCollision bounces p off the wall it reaches within dt and flies the
// rest of the step with the reflected velocity.
func ResolveCollision(tube geometry.Tube, p Particle, dt float64) (Collision, error) {
	tc, err := CollisionTime(tube, p, dt)
	if err != nil {
		return Collision{}, err
	}
	point := p.Position.AddScaled(p.Velocity, tc)
	normal := WallNormal(tube, point)
	if !normal.IsValid() {
		return Collision{}, fmt.Errorf("%w: wall normal at %v", ErrNumericalDivergence, point)
	}
	reflected := Reflect(p.Velocity, normal)
	return Collision{
		Time:     tc,
		Point:    point,
		Normal:   normal,
		Incoming: p.Velocity,
		Velocity: reflected,
		Final:    Particle{Position: point, Velocity: reflected}.Advance(max(dt-tc, 0)),
	}, nil
}
