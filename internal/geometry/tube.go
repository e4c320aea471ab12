package geometry

import (
	"fmt"
	"math"
)

// Tube is a circular tube whose radius oscillates along x:
// radius(x) = AverageRadius + Amplitude*cos(2*pi*x/Wavelength).
type Tube struct {
	Wavelength    float64 // S
	Amplitude     float64 // A
	AverageRadius float64 // Z0
}

func NewTube(wavelength, amplitude, averageRadius float64) Tube {
	return Tube{
		Wavelength:    wavelength,
		Amplitude:     amplitude,
		AverageRadius: averageRadius,
	}
}

func (t Tube) waveNumber() float64 {
	return 2. * math.Pi / t.Wavelength
}

func (t Tube) Radius(x float64) float64 {
	return math.FMA(t.Amplitude, math.Cos(t.waveNumber()*x), t.AverageRadius)
}

// Slope is dRadius/dx.
func (t Tube) Slope(x float64) float64 {
	k := t.waveNumber()
	return -t.Amplitude * k * math.Sin(k*x)
}

// InnerRadius is the radius of the bore that is free of corrugation at every x.
func (t Tube) InnerRadius() float64 {
	return t.AverageRadius - t.Amplitude
}

func (t Tube) OuterRadius() float64 {
	return t.AverageRadius + t.Amplitude
}

// Inside reports whether the point lies within the wall, up to tolerance eps.
func (t Tube) Inside(x, y, z, eps float64) bool {
	return math.Hypot(y, z) <= t.Radius(x)+eps
}

func (t Tube) Validate() error {
	if !(t.Wavelength > 0) {
		return fmt.Errorf("wavelength must be positive, got %g", t.Wavelength)
	}
	if t.Amplitude < 0 {
		return fmt.Errorf("amplitude must be non-negative, got %g", t.Amplitude)
	}
	if t.Amplitude >= t.AverageRadius {
		return fmt.Errorf("amplitude %g must be below the average radius %g", t.Amplitude, t.AverageRadius)
	}
	return nil
}

func (t Tube) String() string {
	return fmt.Sprintf("S=%g A=%g Z0=%g", t.Wavelength, t.Amplitude, t.AverageRadius)
}
