package record

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildstyl3r/knudsen/internal/config"
)

func TestManifestRoundTrip(t *testing.T) {
	seedY := 0.25
	manifest := Manifest{
		RunID:          "5d1b6f0e-8c43-4a8e-9a43-2f1c9b7f4a10",
		Model:          "corrugated",
		EventsFile:     "events_S1_A0.1_Z0.5_u0_s1_t2.csv",
		Started:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Finished:       time.Date(2024, 3, 1, 12, 0, 3, 0, time.UTC),
		Particles:      98,
		Failed:         2,
		MeanCollisions: 4.5,
		Diffusion:      0.0125,
		Parameters: config.ModelParameters{
			Wavelength:    1,
			Amplitude:     0.1,
			AverageRadius: 0.5,
			Duration:      2,
			NParticles:    100,
			TimeBins:      10,
			Seed:          7,
			InitialY:      &seedY,
		},
	}
	path := filepath.Join(t.TempDir(), "manifest.toml")
	require.NoError(t, WriteManifest(path, manifest))

	read, err := ReadManifest(path)
	require.NoError(t, err)
	assert.True(t, manifest.Started.Equal(read.Started))
	assert.True(t, manifest.Finished.Equal(read.Finished))
	read.Started, read.Finished = manifest.Started, manifest.Finished
	assert.Equal(t, manifest, read)
	assert.Nil(t, read.Parameters.InitialX)
}
