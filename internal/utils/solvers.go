package utils

import (
	"errors"
	"math"
)

var (
	ErrNoSignChange = errors.New("no sign change in search interval")
	ErrNotConverged = errors.New("search did not converge")
)

// return the point of the condition support that is not farther than eps from the support boundary
// invariant: at *right* condition must be TRUE
func BinarySearch(condition func(float64) bool, falseDom, trueDom, eps float64, maxIterations int) (float64, float64, error) {
	for i := 0; math.Abs(trueDom-falseDom) > eps; i++ {
		if i == maxIterations {
			return falseDom, trueDom, ErrNotConverged
		}
		c := (falseDom + trueDom) * 0.5
		if condition(c) {
			trueDom = c
		} else {
			falseDom = c
		}
	}
	return falseDom, trueDom, nil
}

// FirstCrossing scans [left, right] in samples steps and returns the earliest
// interval [a, b] with f(a) >= 0 and f(b) < 0.
// When f(left) <= 0 the interval next to left is probed by halving, up to
// refinements times, for a point where f turns positive. If there is none and
// f(left) is exactly zero, the crossing is at left itself.
func FirstCrossing(f func(float64) float64, left, right float64, samples, refinements int) (a, b float64, err error) {
	prev, fPrev := left, f(left)
	if math.IsNaN(fPrev) {
		return left, right, ErrNotConverged
	}
	for k := 1; k <= samples; k++ {
		t := left + (right-left)*float64(k)/float64(samples)
		ft := f(t)
		if math.IsNaN(ft) {
			return prev, t, ErrNotConverged
		}
		if ft < 0 {
			if fPrev > 0 || prev > left {
				return prev, t, nil
			}
			a, b, err := probeFromLeft(f, left, t, refinements)
			if err != nil && fPrev == 0 {
				return left, b, nil
			}
			return a, b, err
		}
		prev, fPrev = t, ft
	}
	return left, right, ErrNoSignChange
}

// probeFromLeft returns the last negative probe as b when no positive point is found.
func probeFromLeft(f func(float64) float64, left, right float64, refinements int) (float64, float64, error) {
	outside := right
	for range refinements {
		p := 0.5 * (left + outside)
		if p <= left {
			break
		}
		if f(p) >= 0 {
			return p, outside, nil
		}
		outside = p
	}
	return left, outside, ErrNoSignChange
}
