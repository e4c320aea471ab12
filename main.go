package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/facette/natsort"
	"github.com/wildstyl3r/knudsen/internal/config"
	"github.com/wildstyl3r/knudsen/internal/model"
	"github.com/wildstyl3r/knudsen/internal/record"
	"github.com/wildstyl3r/knudsen/internal/utils"
)

func main() {
	fs := flag.CommandLine
	dataFlags := model.NewDataFlags(fs)
	var configFileNamePointer = fs.String("input", "tube", "model configuration in toml format")
	var threads = fs.Int("threads", runtime.NumCPU(), "number of particle workers")
	var verbose = fs.Bool("v", false, "verbose output")
	var plot = fs.Bool("plot", false, "plot mean squared displacement in the terminal")
	flag.Parse()

	startTime := time.Now()
	fmt.Printf("Current time: %s\n", startTime.UTC().Format(time.UnixDate))

	configFileName := strings.TrimSuffix(*configFileNamePointer, ".toml")
	cfg, meta, err := config.LoadConfig(configFileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	modelNames := make([]string, 0, len(cfg.Models))
	for name := range cfg.Models {
		modelNames = append(modelNames, name)
	}
	sort.Slice(modelNames, func(i, j int) bool { return natsort.Compare(modelNames[i], modelNames[j]) })

	summary := utils.CSV{}
	failedModels := 0
	for _, modelName := range modelNames {
		fmt.Println("\n" + modelName)
		parameters := cfg.Models[modelName]
		parameters.SetVerbosity(*verbose)
		parameters.SetThreads(*threads)
		if err := parameters.CheckAndUnify(modelName, &cfg, &meta); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failedModels++
			continue
		}
		row, err := runModel(modelName, parameters, outputDir, dataFlags, *plot)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failedModels++
			continue
		}
		summary = append(summary, row)
	}

	if len(summary) > 0 {
		err := utils.WriteAsCSV(summary, filepath.Join(outputDir, utils.GetFilename(configFileName)+"_summary.csv"),
			[]string{"model", "run id", "particles", "failed", "mean collisions", "diffusion (m^2 s^-1)"})
		if err != nil {
			log.Println(err)
		}
	}
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
	if failedModels > 0 {
		os.Exit(1)
	}
}

func runModel(modelName string, parameters config.ModelParameters, outputDir string, dataFlags model.DataFlags, plot bool) ([]string, error) {
	started := time.Now()
	m, err := model.NewModel(modelName, parameters)
	if err != nil {
		return nil, err
	}
	outputPath, err := utils.OutputPath(parameters.MakeDir, outputDir, modelName)
	if err != nil {
		return nil, err
	}
	eventsFile := record.EventsFileName(parameters)
	sink, err := record.OpenCSVSink(filepath.Join(outputPath, eventsFile), parameters.OutputUnits())
	if err != nil {
		return nil, fmt.Errorf("unable to open event file: %w", err)
	}
	runErr := m.Run(sink)
	if err := errors.Join(runErr, sink.Close()); err != nil {
		return nil, fmt.Errorf("unable to save events: %w", err)
	}
	if n := len(m.Result.Failures); n > 0 {
		m.Logger().Printf("%d of %d particles failed", n, parameters.NParticles)
	}

	dataExtractor := model.NewDataExtractor(&m)
	if err := dataExtractor.Save(outputPath, dataFlags); err != nil {
		return nil, err
	}
	if plot {
		fmt.Println(dataExtractor.Plot())
	}

	manifest := record.NewManifest(&m, eventsFile, started)
	manifest.MeanCollisions = dataExtractor.MeanCollisions
	manifest.Diffusion = dataExtractor.Diffusion
	if err := record.WriteManifest(filepath.Join(outputPath, modelName+"_manifest.toml"), manifest); err != nil {
		return nil, err
	}

	return []string{
		modelName,
		m.RunID.String(),
		strconv.Itoa(len(m.Result.Streams)),
		strconv.Itoa(len(m.Result.Failures)),
		strconv.FormatFloat(dataExtractor.MeanCollisions, 'g', -1, 64),
		strconv.FormatFloat(dataExtractor.Diffusion, 'g', -1, 64),
	}, nil
}
