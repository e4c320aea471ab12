package model

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/wildstyl3r/knudsen/internal/config"
	"github.com/wildstyl3r/knudsen/internal/geometry"
)

// EventSink persists finished event streams. WriteStream is called from a
// single goroutine, one whole stream at a time.
type EventSink interface {
	WriteStream(stream *EventStream) error
}

type Model struct {
	Name       string
	RunID      uuid.UUID
	Parameters config.ModelParameters
	Tube       geometry.Tube
	Overrides  Overrides
	Result     EnsembleResult

	stepper *Stepper
	logger  *log.Logger
}

func NewModel(name string, parameters config.ModelParameters) (Model, error) {
	if err := parameters.Validate(); err != nil {
		return Model{}, err
	}
	m := Model{
		Name:       name,
		RunID:      uuid.New(),
		Parameters: parameters,
		Tube:       parameters.Tube(),
		Overrides: Overrides{
			X: parameters.InitialX, Y: parameters.InitialY, Z: parameters.InitialZ,
			VX: parameters.InitialVX, VY: parameters.InitialVY, VZ: parameters.InitialVZ,
		},
	}
	m.stepper = NewStepper(m.Tube)
	m.SetLogOutput(os.Stderr)

	if m.Parameters.Verbose() {
		m.logger.Printf("tube %v, inner bore radius %g", m.Tube, m.Tube.InnerRadius())
	}
	return m, nil
}

func (m *Model) SetLogOutput(w io.Writer) {
	m.logger = log.New(w, fmt.Sprintf("%s [%s] ", m.Name, m.RunID.String()[:8]), log.LstdFlags)
}

func (m *Model) Logger() *log.Logger {
	return m.logger
}

// Each particle draws from its own source so a run does not depend on scheduling.
func (m *Model) newRand(index int) *rand.Rand {
	return rand.New(rand.NewSource(m.Parameters.Seed + int64(index)))
}

func (m *Model) SimulateParticle(index int) (EventStream, error) {
	initial := NewParticle(m.Tube, m.Parameters.FlowVelocity, m.Parameters.VelocityVariance, m.Overrides, m.newRand(index))
	return m.stepper.Simulate(index, initial, m.Parameters.Duration)
}

type runOutcome struct {
	stream EventStream
	err    error
}

// Run simulates NParticles independent particles on Threads workers. Failed
// particles are logged and left out of the result; the first sink error is returned.
func (m *Model) Run(sink EventSink) error {
	var computeWg, stateWg sync.WaitGroup
	var sinkErr error
	var streams []EventStream
	var failures []*SimulationError

	resultflow := make(chan runOutcome, m.Parameters.Threads()*4)
	stateWg.Add(1)
	go func() {
		defer stateWg.Done()
		for outcome := range resultflow {
			if outcome.err != nil {
				var simErr *SimulationError
				if !errors.As(outcome.err, &simErr) {
					simErr = &SimulationError{Particle: outcome.stream.Particle, Wrapped: outcome.err}
				}
				failures = append(failures, simErr)
				m.logger.Printf("particle %d failed: %v", simErr.Particle, outcome.err)
				continue
			}
			if sink != nil && sinkErr == nil {
				sinkErr = sink.WriteStream(&outcome.stream)
			}
			streams = append(streams, outcome.stream)
		}
	}()

	computeflow := make(chan int, m.Parameters.NParticles)
	for i := range m.Parameters.NParticles {
		computeflow <- i
	}
	close(computeflow)

	status := []string{"//", "==", "\\\\", "||"}
	for range m.Parameters.Threads() {
		computeWg.Add(1)
		go func() {
			defer computeWg.Done()
			counter := 0
			for index := range computeflow {
				counter++
				if m.Parameters.Verbose() {
					print("\r" + status[counter&0b11])
				}
				stream, err := m.SimulateParticle(index)
				if err != nil {
					stream.Particle = index
				}
				resultflow <- runOutcome{stream: stream, err: err}
			}
		}()
	}
	computeWg.Wait()
	close(resultflow)
	stateWg.Wait()
	if m.Parameters.Verbose() {
		print("\r")
	}

	slices.SortFunc(streams, func(a, b EventStream) int { return a.Particle - b.Particle })
	slices.SortFunc(failures, func(a, b *SimulationError) int { return a.Particle - b.Particle })
	m.Result = EnsembleResult{Streams: streams, Failures: failures}
	return sinkErr
}
