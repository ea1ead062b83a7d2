package calculator

import "strconv"

// Valid reports whether u is one of the five supported volume units.
func (u VolumeUnit) Valid() bool {
	switch u {
	case CubicFeet, CubicYards, CubicMeters, Liters, Gallons:
		return true
	}
	return false
}

// Symbol returns the conventional symbol for u. Unknown units map to ft³.
func (u VolumeUnit) Symbol() string {
	switch u {
	case CubicYards:
		return "yd³"
	case CubicMeters:
		return "m³"
	case Liters:
		return "L"
	case Gallons:
		return "gal"
	default:
		return "ft³"
	}
}

// In returns the field of v that corresponds to unit, falling back to cubic feet.
func (v VolumeResult) In(unit VolumeUnit) float64 {
	switch unit {
	case CubicYards:
		return v.CubicYards
	case CubicMeters:
		return v.CubicMeters
	case Liters:
		return v.Liters
	case Gallons:
		return v.Gallons
	default:
		return v.CubicFeet
	}
}

// Format renders the volume in unit, e.g. "12 ft³" or "339.8 L".
// A nil result formats as "0 ft³".
func Format(v *VolumeResult, unit VolumeUnit) string {
	if v == nil {
		return "0 ft³"
	}
	if !unit.Valid() {
		unit = CubicFeet
	}
	return strconv.FormatFloat(v.In(unit), 'f', -1, 64) + " " + unit.Symbol()
}
