package config

import "github.com/wildstyl3r/knudsen/internal/utils"

var unitToSI = map[string]float64{
	"m":  1,    // [m]
	"cm": 1e-2, // [m]
	"mm": 1e-3, // [m]
	"um": 1e-6, // [m]
	"nm": 1e-9, // [m]
	"s":  1,    // [s]
	"ms": 1e-3, // [s]
	"us": 1e-6, // [s]
	"ns": 1e-9, // [s]
}

type UnitClass int

const (
	Length UnitClass = iota
	Time
)

var unitsInClass = map[UnitClass][]string{
	Length: {"nm", "um", "mm", "cm", "m"},
	Time:   {"ns", "us", "ms", "s"},
}

var classesOfUnits = map[string]UnitClass{
	"m":  Length,
	"cm": Length,
	"mm": Length,
	"um": Length,
	"nm": Length,
	"s":  Time,
	"ms": Time,
	"us": Time,
	"ns": Time,
}

type UnitElement = struct {
	Class UnitClass
	Power int
}

var (
	LengthUnit   = []UnitElement{{Class: Length, Power: 1}}
	TimeUnit     = []UnitElement{{Class: Time, Power: 1}}
	VelocityUnit = []UnitElement{{Class: Length, Power: 1}, {Class: Time, Power: -1}}
	VarianceUnit = []UnitElement{{Class: Length, Power: 2}, {Class: Time, Power: -2}}
	// mean squared displacement
	AreaUnit      = []UnitElement{{Class: Length, Power: 2}}
	DiffusionUnit = []UnitElement{{Class: Length, Power: 2}, {Class: Time, Power: -1}}
)

var defaultUnits = []string{"m", "s"}

func checkUnits(units []string) (extended, conflicts []string) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			conflicts = append(conflicts, unit)
			continue
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string{}, units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// SI converts v given in units into SI when direct is set, and from SI into units otherwise.
func SI(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for i := range classes {
		uc := classes[i]
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		absPower := utils.IntAbs(uc.Power)
		if direct == (uc.Power > 0) {
			for range absPower {
				v *= unitToSI[*unit]
			}
		} else {
			for range absPower {
				v /= unitToSI[*unit]
			}
		}
	}
	return v
}
