package utils

import (
	"cmp"
	"math"
	"math/rand"
	"slices"

	"golang.org/x/exp/constraints"
)

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

func Average[T Number](s []T) (mean float64) {
	for i := range s {
		mean += float64(s[i])
	}
	mean /= float64(len(s))
	return
}

func MeanAndVariance[T Number](s []T, unbiased bool) (mean, variance float64) {
	mean = Average(s)
	if len(s) < 2 {
		return mean, 0
	}
	for i := range s {
		variance += (float64(s[i]) - mean) * (float64(s[i]) - mean)
	}
	if unbiased {
		variance /= float64(len(s) - 1)
	} else {
		variance /= float64(len(s))
	}

	return
}

func Variance[T Number](s []T, unbiased bool) float64 {
	_, v := MeanAndVariance(s, unbiased)
	return v
}

func IntAbs(a int) int {
	if a < 0 {
		return -a
	} else {
		return a
	}

}

// UniformOnDisk rejection-samples a point uniformly distributed over the disk of radius r.
func UniformOnDisk(rng *rand.Rand, r float64) (a, b float64) {
	a, b = 2.*rng.Float64()-1., 2.*rng.Float64()-1.
	for a*a+b*b > 1. {
		a, b = 2.*rng.Float64()-1., 2.*rng.Float64()-1.
	}
	a *= r
	b *= r
	return
}

func Normal(rng *rand.Rand, mean, variance float64) float64 {
	return math.FMA(rng.NormFloat64(), math.Sqrt(variance), mean)
}

func Intersect(a, b []string) *string {
	for i := range a {
		if slices.Contains(b, a[i]) {
			return &a[i]
		}
	}
	return nil
}
