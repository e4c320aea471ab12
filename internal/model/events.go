package model

import (
	"errors"
	"time"
)

type CollisionEvent struct {
	Collision int
	Time      float64 // simulated [s]
	Position  Vec3
	Velocity  Vec3
	EmittedAt time.Time
}

// EventStream holds one particle's samples: the initial state, one sample per
// wall impact and the state at the end of the run.
type EventStream struct {
	Particle int
	Events   []CollisionEvent
	closed   bool
}

var errStreamClosed = errors.New("event stream is closed")

func (s *EventStream) emit(e CollisionEvent) error {
	if s.closed {
		return errStreamClosed
	}
	s.Events = append(s.Events, e)
	return nil
}

func (s *EventStream) close() {
	s.closed = true
}

func (s *EventStream) Closed() bool {
	return s.closed
}

// Collisions is the number of wall impacts in the stream.
func (s *EventStream) Collisions() int {
	return max(len(s.Events)-2, 0)
}

func (s *EventStream) Final() CollisionEvent {
	return s.Events[len(s.Events)-1]
}

// At returns the particle state at simulated time t. Motion between two
// consecutive samples is a straight flight.
func (s *EventStream) At(t float64) Particle {
	i := 0
	for i+1 < len(s.Events) && s.Events[i+1].Time <= t {
		i++
	}
	e := s.Events[i]
	return Particle{Position: e.Position, Velocity: e.Velocity}.Advance(t - e.Time)
}

// EnsembleResult collects every particle's stream in particle order.
type EnsembleResult struct {
	Streams  []EventStream
	Failures []*SimulationError
}

func (r *EnsembleResult) Collisions() (counts []int) {
	for i := range r.Streams {
		counts = append(counts, r.Streams[i].Collisions())
	}
	return
}
