package model

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/wildstyl3r/knudsen/internal/config"
	"github.com/wildstyl3r/knudsen/internal/constants"
	"github.com/wildstyl3r/knudsen/internal/utils"
)

// DataExtractor reduces an ensemble to time-binned averages.
type DataExtractor struct {
	model *Model

	times                []float64
	meanDisplacement     []float64 // <x(t) - x(0)>
	displacementVariance []float64
	meanSquared          []float64 // <(x(t) - x(0))^2>
	meanSquaredError     []float64
	meanRadius           []float64
	collisionHistogram   []float64 // share of particles by number of impacts

	MeanCollisions float64
	Diffusion      float64 // Var(x(t) - x(0)) / 2t at the end of the run
}

func NewDataExtractor(model *Model) *DataExtractor {
	de := DataExtractor{model: model}
	streams := model.Result.Streams
	bins := model.Parameters.TimeBins
	duration := model.Parameters.Duration

	displacements := make([]float64, len(streams))
	squares := make([]float64, len(streams))
	radii := make([]float64, len(streams))
	for j := 0; len(streams) > 0 && j <= bins; j++ {
		t := duration * float64(j) / float64(bins)
		de.times = append(de.times, t)
		for i := range streams {
			p := streams[i].At(t)
			dx := p.Position.X - streams[i].Events[0].Position.X
			displacements[i] = dx
			squares[i] = dx * dx
			radii[i] = p.Position.Transverse()
		}
		mean, variance := utils.MeanAndVariance(displacements, true)
		msd, msdVariance := utils.MeanAndVariance(squares, true)
		de.meanDisplacement = append(de.meanDisplacement, mean)
		de.displacementVariance = append(de.displacementVariance, variance)
		de.meanSquared = append(de.meanSquared, msd)
		de.meanSquaredError = append(de.meanSquaredError, constants.Quantile95*math.Sqrt(msdVariance/float64(len(streams))))
		de.meanRadius = append(de.meanRadius, utils.Average(radii))
	}

	counts := model.Result.Collisions()
	if len(counts) > 0 {
		de.MeanCollisions = utils.Average(counts)
		de.collisionHistogram = make([]float64, counts[utils.Argmax(counts)]+1)
		for _, c := range counts {
			de.collisionHistogram[c] += 1. / float64(len(counts))
		}
		de.Diffusion = de.displacementVariance[bins] / (2. * duration)
	}

	if model.Parameters.Verbose() {
		model.logger.Printf("avg collisions per particle: %g, diffusion coefficient: %g", de.MeanCollisions, de.Diffusion)
	}
	return &de
}

// Plot renders the mean squared displacement for a terminal.
func (de *DataExtractor) Plot() string {
	if len(de.meanSquared) == 0 {
		return ""
	}
	return asciigraph.Plot(de.meanSquared,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s: <dx^2> over %g s", de.model.Name, de.model.Parameters.Duration)),
	)
}

func (de *DataExtractor) Save(outputPath string, df DataFlags) error {
	units := de.model.Parameters.OutputUnits()
	for name, output := range df.sequentials {
		if !*output.saveFlag && !*df.all {
			continue
		}
		file, err := utils.OpenFile(de.model.Parameters.MakeDir, outputPath, output.fileSuffix, de.model.Name)
		if err != nil {
			return fmt.Errorf("unable to save %s: %w", name, err)
		}
		rows := [][]string{output.columnNames}
		xColumnValue, yColumnValues := output.values(de)
		for x := range xColumnValue {
			row := []string{strconv.FormatFloat(config.SI(xColumnValue[x], output.xUnit, units, false), 'g', -1, 64)}
			for i := range yColumnValues[x] {
				row = append(row, strconv.FormatFloat(config.SI(yColumnValues[x][i], output.yUnit, units, false), 'g', -1, 64))
			}
			rows = append(rows, row)
		}
		w := csv.NewWriter(file)
		err = w.WriteAll(rows)
		file.Close()
		if err != nil {
			return fmt.Errorf("error writing csv: %w", err)
		}
		if de.model.Parameters.Verbose() {
			de.model.logger.Println(name + " saved")
		}
	}
	return nil
}
