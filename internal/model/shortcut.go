package model

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/knudsen/internal/geometry"
)

// BoreCrossing is a flight straight across the inner bore, where no wall can be reached.
type BoreCrossing struct {
	Time  float64
	State Particle // on the far rim of the bore
}

// CrossInnerBore intersects the transverse chord of the step [0, dt] with the
// inner bore circle and jumps to the intersection farther from the start.
// The step must begin on or outside the bore and end inside it.
func CrossInnerBore(tube geometry.Tube, p Particle, dt float64) (BoreCrossing, error) {
	radius := tube.InnerRadius()
	py, pz := p.Position.Y, p.Position.Z
	dy, dz := p.Velocity.Y*dt, p.Velocity.Z*dt

	a := math.FMA(dy, dy, dz*dz)
	if a == 0 {
		return BoreCrossing{}, fmt.Errorf("%w: zero transverse velocity", ErrDegenerateGeometry)
	}
	b := 2. * math.FMA(py, dy, pz*dz)
	c := math.FMA(py, py, pz*pz) - radius*radius
	discriminant := math.FMA(b, b, -4.*a*c)
	if discriminant < 0 {
		return BoreCrossing{}, fmt.Errorf("%w: chord from %v misses the bore of radius %g", ErrDegenerateGeometry, p.Position, radius)
	}
	root := math.Sqrt(discriminant)
	near, far := (-b-root)/(2.*a), (-b+root)/(2.*a)
	if math.Abs(near) > math.Abs(far) {
		near, far = far, near
	}
	// both rims must lie ahead, the far one beyond the tentative step
	if !(far > 1) || near < -1e-9 {
		return BoreCrossing{}, fmt.Errorf("%w: chord rims at %g and %g of the step", ErrDegenerateGeometry, near, far)
	}

	yFar, zFar := math.FMA(far, dy, py), math.FMA(far, dz, pz)
	distance := math.Hypot(yFar-py, zFar-pz)
	t := distance / math.Hypot(p.Velocity.Y, p.Velocity.Z)
	return BoreCrossing{
		Time: t,
		State: Particle{
			Position: Vec3{math.FMA(p.Velocity.X, t, p.Position.X), yFar, zFar},
			Velocity: p.Velocity,
		},
	}, nil
}
