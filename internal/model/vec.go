package model

import (
	"fmt"
	"math"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// AddScaled returns v + o*f.
func (v Vec3) AddScaled(o Vec3, f float64) Vec3 {
	return Vec3{math.FMA(o.X, f, v.X), math.FMA(o.Y, f, v.Y), math.FMA(o.Z, f, v.Z)}
}

func (v Vec3) Dot(o Vec3) float64 {
	return math.FMA(v.X, o.X, math.FMA(v.Y, o.Y, v.Z*o.Z))
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Normalize() Vec3 {
	return v.Scale(1. / v.Norm())
}

// Transverse is the distance from the tube axis.
func (v Vec3) Transverse() float64 {
	return math.Hypot(v.Y, v.Z)
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
