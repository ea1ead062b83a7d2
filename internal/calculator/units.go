package calculator

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/soil-calculator/internal/metrics"
)

const (
	inchesPerFoot      = 12.0
	centimetersPerFoot = 30.48
	feetPerMeter       = 3.28084
)

var lengthUnitAliases = map[string]LengthUnit{
	"in":          Inches,
	"inch":        Inches,
	"inches":      Inches,
	"ft":          Feet,
	"foot":        Feet,
	"feet":        Feet,
	"cm":          Centimeters,
	"centimeter":  Centimeters,
	"centimeters": Centimeters,
	"m":           Meters,
	"meter":       Meters,
	"meters":      Meters,
}

// ParseLengthUnit normalises common spellings of a length unit. Unrecognised
// values are returned unchanged so ToFeet can apply its fallback.
func ParseLengthUnit(raw string) LengthUnit {
	key := strings.ToLower(strings.TrimSpace(raw))
	if unit, ok := lengthUnitAliases[key]; ok {
		return unit
	}
	return LengthUnit(raw)
}

// Valid reports whether u is one of the supported length units.
func (u LengthUnit) Valid() bool {
	switch u {
	case Inches, Feet, Centimeters, Meters:
		return true
	}
	return false
}

// Symbol returns the short label used in bed names.
func (u LengthUnit) Symbol() string {
	switch u {
	case Inches:
		return "in"
	case Centimeters:
		return "cm"
	case Meters:
		return "m"
	default:
		return "ft"
	}
}

// ToFeet converts value to feet. An unknown unit is treated as feet and logged.
func (c *soilCalculator) ToFeet(value float64, unit LengthUnit) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidInput
	}

	switch unit {
	case Inches:
		return value / inchesPerFoot, nil
	case Feet:
		return value, nil
	case Centimeters:
		return value / centimetersPerFoot, nil
	case Meters:
		return value * feetPerMeter, nil
	default:
		c.logger.Warn("unknown length unit, defaulting to feet",
			zap.String("unit", string(unit)),
			zap.Error(ErrUnknownUnit),
		)
		metrics.RecordUnknownUnit("length")
		return value, nil
	}
}
