package model

import (
	"flag"

	"github.com/wildstyl3r/knudsen/internal/config"
)

type DataItem struct {
	saveFlag   *bool
	fileSuffix string
}

type SequentialDataItem struct {
	DataItem
	columnNames []string
	values      func(*DataExtractor) (args []float64, values [][]float64)
	xUnit       []config.UnitElement
	yUnit       []config.UnitElement
}

type DataFlags struct {
	all         *bool
	sequentials map[string]SequentialDataItem
}

func column(args []float64, columns ...[]float64) ([]float64, [][]float64) {
	values := make([][]float64, len(args))
	for i := range args {
		for _, c := range columns {
			values[i] = append(values[i], c[i])
		}
	}
	return args, values
}

func NewDataFlags(fs *flag.FlagSet) DataFlags {
	return DataFlags{
		all: fs.Bool("all", false, "save every available metric"),
		sequentials: map[string]SequentialDataItem{
			"Mean displacement": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("mx", false, "save mean axial displacement"),
					fileSuffix: "mx",
				},
				columnNames: []string{"t", "<dx>", "Var(dx)"},
				values: func(de *DataExtractor) ([]float64, [][]float64) {
					return column(de.times, de.meanDisplacement, de.displacementVariance)
				},
				xUnit: config.TimeUnit,
				yUnit: config.LengthUnit,
			},
			"Mean squared displacement": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("msd", true, "save mean squared axial displacement"),
					fileSuffix: "msd",
				},
				columnNames: []string{"t", "<dx^2>", "Confidence interval"},
				values: func(de *DataExtractor) ([]float64, [][]float64) {
					return column(de.times, de.meanSquared, de.meanSquaredError)
				},
				xUnit: config.TimeUnit,
				yUnit: config.AreaUnit,
			},
			"Mean radius": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("mr", false, "save mean distance from the axis"),
					fileSuffix: "mr",
				},
				columnNames: []string{"t", "<r>"},
				values: func(de *DataExtractor) ([]float64, [][]float64) {
					return column(de.times, de.meanRadius)
				},
				xUnit: config.TimeUnit,
				yUnit: config.LengthUnit,
			},
			"Collision histogram": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("ch", false, "save share of particles by number of wall impacts"),
					fileSuffix: "ch",
				},
				columnNames: []string{"collisions", "share"},
				values: func(de *DataExtractor) ([]float64, [][]float64) {
					counts := make([]float64, len(de.collisionHistogram))
					for i := range counts {
						counts[i] = float64(i)
					}
					return column(counts, de.collisionHistogram)
				},
			},
		},
	}
}
