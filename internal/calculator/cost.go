package calculator

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eugenenazirov/soil-calculator/internal/metrics"
)

// SoilCost prices the volume at pricePerUnit per one unit of the given volume unit.
func (c *soilCalculator) SoilCost(volume VolumeResult, pricePerUnit float64, unit VolumeUnit) (float64, error) {
	if !finite(pricePerUnit) {
		return 0, NewDimensionError("price", ErrInvalidInput)
	}
	if pricePerUnit < 0 {
		return 0, ErrNegativePrice
	}
	if !unit.Valid() {
		c.logger.Warn("unknown volume unit, defaulting to cubic feet",
			zap.String("unit", string(unit)),
			zap.Error(ErrUnknownUnit),
		)
		metrics.RecordUnknownUnit("volume")
		unit = CubicFeet
	}

	cost := decimal.NewFromFloat(volume.In(unit)).
		Mul(decimal.NewFromFloat(pricePerUnit)).
		Round(roundingDecimalPlaces)
	return cost.InexactFloat64(), nil
}
