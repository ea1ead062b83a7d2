package calculator

import (
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxDimensionFeet bounds every dimension after conversion to feet.
const MaxDimensionFeet = 1000.0

const (
	cubicFeetPerCubicYard = 27.0
	cubicMetersPerCubicFt = 0.0283168
	litersPerCubicMeter   = 1000.0
	gallonsPerCubicFoot   = 7.48052
	roundingDecimalPlaces = 2
)

type soilCalculator struct {
	logger *zap.Logger
}

// Option configures the calculator.
type Option func(*soilCalculator)

// WithLogger sets the logger used for unit fallback warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(c *soilCalculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Calculator.
func New(opts ...Option) Calculator {
	c := &soilCalculator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type measurement struct {
	field string
	value float64
	unit  LengthUnit
}

func (c *soilCalculator) RectangularVolume(dims RectangularDimensions) (VolumeResult, error) {
	feet, err := c.convertAll([]measurement{
		{field: "length", value: dims.Length, unit: dims.LengthWidthUnit},
		{field: "width", value: dims.Width, unit: dims.LengthWidthUnit},
		{field: "height", value: dims.Height, unit: dims.HeightUnit},
	})
	if err != nil {
		return VolumeResult{}, err
	}

	return FromCubicFeet(feet[0]*feet[1]*feet[2], CubicFeet), nil
}

func (c *soilCalculator) CircularVolume(dims CircularDimensions) (VolumeResult, error) {
	feet, err := c.convertAll([]measurement{
		{field: "diameter", value: dims.Diameter, unit: dims.DiameterUnit},
		{field: "height", value: dims.Height, unit: dims.HeightUnit},
	})
	if err != nil {
		return VolumeResult{}, err
	}

	radius := feet[0] / 2
	return FromCubicFeet(math.Pi*radius*radius*feet[1], CubicFeet), nil
}

// convertAll validates every measurement before converting any of them: presence
// and sign first, in field order, then the converted upper bound.
func (c *soilCalculator) convertAll(ms []measurement) ([]float64, error) {
	for _, m := range ms {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return nil, NewDimensionError(m.field, ErrInvalidInput)
		}
		if m.value <= 0 {
			return nil, NewDimensionError(m.field, ErrInvalidDimension)
		}
	}

	out := make([]float64, len(ms))
	for i, m := range ms {
		ft, err := c.ToFeet(m.value, m.unit)
		if err != nil {
			return nil, NewDimensionError(m.field, err)
		}
		if ft > MaxDimensionFeet {
			return nil, NewDimensionError(m.field, ErrDimensionTooLarge)
		}
		out[i] = ft
	}
	return out, nil
}

// FromCubicFeet derives all five units from an unrounded cubic-feet value and
// rounds each one independently. Liters go through unrounded cubic meters.
func FromCubicFeet(cubicFeet float64, displayUnit VolumeUnit) VolumeResult {
	cubicMeters := cubicFeet * cubicMetersPerCubicFt
	return VolumeResult{
		CubicFeet:   Round(cubicFeet),
		CubicYards:  Round(cubicFeet / cubicFeetPerCubicYard),
		CubicMeters: Round(cubicMeters),
		Liters:      Round(cubicMeters * litersPerCubicMeter),
		Gallons:     Round(cubicFeet * gallonsPerCubicFoot),
		DisplayUnit: displayUnit,
	}
}

// Round rounds v to two decimal places, half away from zero.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(roundingDecimalPlaces).InexactFloat64()
}
