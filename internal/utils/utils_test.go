package utils

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatistics(t *testing.T) {
	s := []int{1, 2, 3, 4}
	assert.Equal(t, 10, SumSlice(s))
	assert.InDelta(t, 2.5, Average(s), 1e-12)
	mean, v := MeanAndVariance(s, false)
	assert.InDelta(t, 2.5, mean, 1e-12)
	assert.InDelta(t, 1.25, v, 1e-12)
	assert.InDelta(t, 5./3., Variance(s, true), 1e-12)
	assert.Equal(t, 0., Variance([]float64{7}, true))
	assert.Equal(t, 2, Argmax([]float64{0.1, 0.5, 0.7, 0.2}))
	assert.Equal(t, 3, IntAbs(-3))
}

func TestUniformOnDisk(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 20000
	var inner int
	for range n {
		a, b := UniformOnDisk(rng, 2)
		r := math.Hypot(a, b)
		assert.LessOrEqual(t, r, 2.)
		if r < 1 {
			inner++
		}
	}
	// a quarter of the area lies within half the radius
	assert.InDelta(t, 0.25, float64(inner)/n, 0.02)
}

func TestNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	samples := make([]float64, 20000)
	for i := range samples {
		samples[i] = Normal(rng, 1.5, 4)
	}
	mean, v := MeanAndVariance(samples, true)
	assert.InDelta(t, 1.5, mean, 0.05)
	assert.InDelta(t, 4., v, 0.15)
}

func TestIntersect(t *testing.T) {
	got := Intersect([]string{"mm", "cm", "m"}, []string{"s", "cm"})
	if assert.NotNil(t, got) {
		assert.Equal(t, "cm", *got)
	}
	assert.Nil(t, Intersect([]string{"mm"}, []string{"s"}))
}
