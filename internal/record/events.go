package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/wildstyl3r/knudsen/internal/config"
	"github.com/wildstyl3r/knudsen/internal/model"
)

var Columns = []string{"collision", "time", "x", "y", "z", "vx", "vy", "vz", "emitted_at"}

// CSVSink appends event streams to a CSV file shared by all particles of a run.
type CSVSink struct {
	mu    sync.Mutex
	file  *os.File
	w     *csv.Writer
	units []string
}

// EventsFileName identifies a run configuration by geometry, flow and duration.
func EventsFileName(p config.ModelParameters) string {
	return fmt.Sprintf("events_S%g_A%g_Z%g_u%g_s%g_t%g.csv",
		p.Wavelength, p.Amplitude, p.AverageRadius, p.FlowVelocity, p.VelocityVariance, p.Duration)
}

// OpenCSVSink opens path for appending; the header is written only to a new file.
// Values are written in units.
func OpenCSVSink(path string, units []string) (*CSVSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	s := &CSVSink{file: file, w: csv.NewWriter(file), units: units}
	if info.Size() == 0 {
		if err := s.w.Write(Columns); err != nil {
			file.Close()
			return nil, err
		}
		s.w.Flush()
	}
	return s, s.w.Error()
}

func (s *CSVSink) format(v float64, unit []config.UnitElement) string {
	return strconv.FormatFloat(config.SI(v, unit, s.units, false), 'g', -1, 64)
}

func (s *CSVSink) WriteStream(stream *model.EventStream) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range stream.Events {
		row := []string{
			strconv.Itoa(e.Collision),
			s.format(e.Time, config.TimeUnit),
			s.format(e.Position.X, config.LengthUnit),
			s.format(e.Position.Y, config.LengthUnit),
			s.format(e.Position.Z, config.LengthUnit),
			s.format(e.Velocity.X, config.VelocityUnit),
			s.format(e.Velocity.Y, config.VelocityUnit),
			s.format(e.Velocity.Z, config.VelocityUnit),
			e.EmittedAt.UTC().Format(time.RFC3339Nano),
		}
		if err := s.w.Write(row); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
