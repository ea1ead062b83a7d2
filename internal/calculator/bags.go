package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// BagsRequired returns how many bags of bagSizeCubicFeet are needed to hold
// totalCubicFeet. A partially filled bag still counts. Non-positive bag sizes
// must be rejected by the caller; they yield 0 here. ErrTooManyBags is
// returned when the count is larger than math.MaxInt.
func BagsRequired(totalCubicFeet, bagSizeCubicFeet float64) (int, error) {
	if !finite(totalCubicFeet) || !finite(bagSizeCubicFeet) || bagSizeCubicFeet <= 0 || totalCubicFeet <= 0 {
		return 0, nil
	}

	bags := decimal.NewFromFloat(totalCubicFeet).
		Div(decimal.NewFromFloat(bagSizeCubicFeet)).
		Ceil()
	if bags.GreaterThan(maxBags) {
		return 0, ErrTooManyBags
	}
	return int(bags.IntPart()), nil
}

var maxBags = decimal.NewFromInt(math.MaxInt)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
