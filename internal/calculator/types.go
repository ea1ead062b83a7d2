package calculator

// LengthUnit identifies the unit a linear dimension is measured in.
type LengthUnit string

const (
	Inches      LengthUnit = "inches"
	Feet        LengthUnit = "feet"
	Centimeters LengthUnit = "cm"
	Meters      LengthUnit = "meters"
)

// VolumeUnit identifies one of the five representations carried by a VolumeResult.
type VolumeUnit string

const (
	CubicFeet   VolumeUnit = "cubic_feet"
	CubicYards  VolumeUnit = "cubic_yards"
	CubicMeters VolumeUnit = "cubic_meters"
	Liters      VolumeUnit = "liters"
	Gallons     VolumeUnit = "gallons"
)

// RectangularDimensions describes a box-shaped bed. Length and width share a unit,
// height may be measured in a different one.
type RectangularDimensions struct {
	Length          float64    `json:"length" yaml:"length"`
	Width           float64    `json:"width" yaml:"width"`
	Height          float64    `json:"height" yaml:"height"`
	LengthWidthUnit LengthUnit `json:"lengthWidthUnit" yaml:"length_width_unit"`
	HeightUnit      LengthUnit `json:"heightUnit" yaml:"height_unit"`
}

// CircularDimensions describes a cylindrical bed.
type CircularDimensions struct {
	Diameter     float64    `json:"diameter" yaml:"diameter"`
	Height       float64    `json:"height" yaml:"height"`
	DiameterUnit LengthUnit `json:"diameterUnit" yaml:"diameter_unit"`
	HeightUnit   LengthUnit `json:"heightUnit" yaml:"height_unit"`
}

// VolumeResult holds one volume in five units. Every field is derived from the
// same unrounded cubic-feet value and rounded to two decimals on its own, so
// small disagreements between units in the last digit are expected.
type VolumeResult struct {
	CubicFeet   float64    `json:"cubicFeet"`
	CubicYards  float64    `json:"cubicYards"`
	CubicMeters float64    `json:"cubicMeters"`
	Liters      float64    `json:"liters"`
	Gallons     float64    `json:"gallons"`
	DisplayUnit VolumeUnit `json:"displayUnit"`
}

// Calculator describes the behaviour required from a soil volume calculator.
type Calculator interface {
	ToFeet(value float64, unit LengthUnit) (float64, error)
	RectangularVolume(dims RectangularDimensions) (VolumeResult, error)
	CircularVolume(dims CircularDimensions) (VolumeResult, error)
	SoilCost(volume VolumeResult, pricePerUnit float64, unit VolumeUnit) (float64, error)
}
