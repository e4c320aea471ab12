package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/wildstyl3r/knudsen/internal/geometry"
)

// ErrConfiguration marks a model that must not be simulated.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	OutputDir string
	Models    map[string]ModelParameters
	ModelParameters

	InputUnits  []string
	OutputUnits []string
}

func LoadConfig(configFileName string) (Config, toml.MetaData, error) {
	var config Config
	meta, err := toml.DecodeFile(configFileName+".toml", &config)
	if err != nil {
		return config, meta, err
	}
	return config, meta, config.normalize()
}

func DecodeConfig(data string) (Config, toml.MetaData, error) {
	var config Config
	meta, err := toml.Decode(data, &config)
	if err != nil {
		return config, meta, err
	}
	return config, meta, config.normalize()
}

func (config *Config) normalize() error {
	var unitsConflict []string
	config.InputUnits, unitsConflict = checkUnits(config.InputUnits)
	if len(unitsConflict) > 0 {
		return fmt.Errorf("%w: found input unit conflict: %v", ErrConfiguration, unitsConflict)
	}
	if len(config.OutputUnits) == 0 {
		config.OutputUnits = config.InputUnits
	}
	config.OutputUnits, unitsConflict = checkUnits(config.OutputUnits)
	if len(unitsConflict) > 0 {
		return fmt.Errorf("%w: found output unit conflict: %v", ErrConfiguration, unitsConflict)
	}
	if len(config.Models) == 0 {
		return fmt.Errorf("%w: no models provided", ErrConfiguration)
	}
	return nil
}

type ModelParameters struct {
	Wavelength       float64 // [m]
	Amplitude        float64 // [m]
	AverageRadius    float64 // [m]
	Duration         float64 // [s]
	FlowVelocity     float64 // [m s^-1], mean drift added to vx
	VelocityVariance float64 // [m^2 s^-2]

	NParticles int
	TimeBins   int
	Seed       int64
	MakeDir    bool

	// fixed initial conditions, sampled when absent
	InitialX  *float64 `toml:",omitempty"`
	InitialY  *float64 `toml:",omitempty"`
	InitialZ  *float64 `toml:",omitempty"`
	InitialVX *float64 `toml:",omitempty"`
	InitialVY *float64 `toml:",omitempty"`
	InitialVZ *float64 `toml:",omitempty"`

	_outputUnits []string
	_verbose     bool
	_threads     int
}

func (p *ModelParameters) Tube() geometry.Tube {
	return geometry.NewTube(p.Wavelength, p.Amplitude, p.AverageRadius)
}

func (p *ModelParameters) OutputUnits() []string {
	return p._outputUnits
}

func (p *ModelParameters) SetOutputUnits(u []string) {
	p._outputUnits = u
}

func (p *ModelParameters) Verbose() bool {
	return p._verbose
}

func (p *ModelParameters) SetVerbosity(verbose bool) {
	p._verbose = verbose
}

func (p *ModelParameters) Threads() int {
	return max(p._threads, 1)
}

func (p *ModelParameters) SetThreads(threads int) {
	p._threads = threads
}

// Validate reports parameters under which no particle may be simulated.
func (p *ModelParameters) Validate() error {
	if err := p.Tube().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if !(p.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrConfiguration, p.Duration)
	}
	if p.VelocityVariance < 0 {
		return fmt.Errorf("%w: velocity variance must be non-negative, got %g", ErrConfiguration, p.VelocityVariance)
	}
	if p.NParticles <= 0 {
		return fmt.Errorf("%w: NParticles must be positive, got %d", ErrConfiguration, p.NParticles)
	}
	if p.TimeBins <= 0 {
		return fmt.Errorf("%w: TimeBins must be positive, got %d", ErrConfiguration, p.TimeBins)
	}
	return nil
}

var defaultValues = map[string]any{ // in SI
	"Amplitude":        0.,
	"FlowVelocity":     0.,
	"VelocityVariance": 1., //[m^2 s^-2]
	"NParticles":       100,
	"TimeBins":         100,
	"Seed":             int64(1),
	"MakeDir":          true,
}

var requiredFields = []string{"Wavelength", "AverageRadius", "Duration"}

var valueUnits = map[string][]UnitElement{
	"Wavelength":       LengthUnit,
	"Amplitude":        LengthUnit,
	"AverageRadius":    LengthUnit,
	"Duration":         TimeUnit,
	"FlowVelocity":     VelocityUnit,
	"VelocityVariance": VarianceUnit,
	"InitialX":         LengthUnit,
	"InitialY":         LengthUnit,
	"InitialZ":         LengthUnit,
	"InitialVX":        VelocityUnit,
	"InitialVY":        VelocityUnit,
	"InitialVZ":        VelocityUnit,
}

func (modelConfig *ModelParameters) toSI(parameterNames, units []string) {
	modelConfigReflect := reflect.ValueOf(modelConfig).Elem()
	for _, name := range parameterNames {
		field := modelConfigReflect.FieldByName(name)
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				continue
			}
			// the pointee may be shared with the global table
			value := SI(field.Elem().Float(), valueUnits[name], units, true)
			field.Set(reflect.ValueOf(&value))
		} else if field.CanFloat() {
			field.SetFloat(SI(field.Float(), valueUnits[name], units, true))
		}
	}
}

/*
field value priority:
1. local
2. global
3. default
*/

// CheckAndUnify fills every field the model table leaves out from the global
// table or the defaults and converts the result to SI.
func (modelConfig *ModelParameters) CheckAndUnify(modelName string, config *Config, meta *toml.MetaData) error {
	var discoveredParameters []string

	modelConfigReflect := reflect.ValueOf(modelConfig).Elem()
	globalConfigReflect := reflect.ValueOf(&config.ModelParameters).Elem()
	modelConfigType := modelConfigReflect.Type()
	for i := range modelConfigType.NumField() {
		fieldName := modelConfigType.Field(i).Name
		if !modelConfigType.Field(i).IsExported() {
			continue
		}
		if meta.IsDefined("Models", modelName, fieldName) {
			discoveredParameters = append(discoveredParameters, fieldName)
		} else if meta.IsDefined(fieldName) {
			modelConfigReflect.Field(i).Set(globalConfigReflect.Field(i))
			discoveredParameters = append(discoveredParameters, fieldName)
		}
	}

	var missing []string
	for _, fieldName := range requiredFields {
		if !slices.Contains(discoveredParameters, fieldName) {
			missing = append(missing, fieldName)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: model %s lacks required fields %v", ErrConfiguration, modelName, missing)
	}

	modelConfig.toSI(discoveredParameters, config.InputUnits)

	for fieldName, value := range defaultValues {
		if !slices.Contains(discoveredParameters, fieldName) {
			modelConfigReflect.FieldByName(fieldName).Set(reflect.ValueOf(value))
		}
	}

	modelConfig._outputUnits = config.OutputUnits
	return modelConfig.Validate()
}
