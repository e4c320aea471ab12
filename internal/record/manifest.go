package record

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/wildstyl3r/knudsen/internal/config"
	"github.com/wildstyl3r/knudsen/internal/model"
)

// Manifest describes one ensemble run next to its event file.
type Manifest struct {
	RunID      string
	Model      string
	EventsFile string
	Started    time.Time
	Finished   time.Time
	Particles  int
	Failed     int

	MeanCollisions float64
	Diffusion      float64 // [m^2 s^-1]

	Parameters config.ModelParameters
}

func NewManifest(m *model.Model, eventsFile string, started time.Time) Manifest {
	return Manifest{
		RunID:      m.RunID.String(),
		Model:      m.Name,
		EventsFile: eventsFile,
		Started:    started,
		Finished:   time.Now(),
		Particles:  len(m.Result.Streams),
		Failed:     len(m.Result.Failures),
		Parameters: m.Parameters,
	}
}

func WriteManifest(path string, manifest Manifest) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(file).Encode(manifest); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func ReadManifest(path string) (Manifest, error) {
	var manifest Manifest
	_, err := toml.DecodeFile(path, &manifest)
	return manifest, err
}
