package catalog

import "github.com/eugenenazirov/soil-calculator/internal/calculator"

func rect(id, name, description string, length, width, height float64, lwUnit, hUnit calculator.LengthUnit) Bed {
	return Bed{
		ID:          id,
		Name:        name,
		Description: description,
		Shape:       Rectangular,
		Rectangular: &calculator.RectangularDimensions{
			Length:          length,
			Width:           width,
			Height:          height,
			LengthWidthUnit: lwUnit,
			HeightUnit:      hUnit,
		},
	}
}

func circle(id, name, description string, diameter, height float64, dUnit, hUnit calculator.LengthUnit) Bed {
	return Bed{
		ID:          id,
		Name:        name,
		Description: description,
		Shape:       Circular,
		Circular: &calculator.CircularDimensions{
			Diameter:     diameter,
			Height:       height,
			DiameterUnit: dUnit,
			HeightUnit:   hUnit,
		},
	}
}

const (
	ft = calculator.Feet
	in = calculator.Inches
)

// Brand dimensions quoted in inches are stored as feet rounded to two decimals.
func defaultBeds() []Bed {
	return []Bed{
		rect("classic-large", "Classic Large", "Standard 4' x 8' raised bed commonly used in home gardens", 8, 4, 1, ft, ft),
		rect("medium-rectangle", "Medium Rectangle", "Medium 4' x 6' raised bed good for limited spaces", 6, 4, 1, ft, ft),
		rect("small-square", "Small Square", "Compact 4' x 4' raised bed ideal for small gardens", 4, 4, 1, ft, ft),
		rect("long-narrow", "Long Narrow", "Narrow 2' x 8' raised bed perfect for along fences or pathways", 8, 2, 1, ft, ft),
		rect("birdies-large", "Birdies Large", `Birdies brand 83" x 43" x 15" raised garden bed`, 6.92, 3.58, 15, ft, in),
		rect("birdies-mid-rectangular", "Birdies Mid Rectangular", `Birdies brand 73" x 51" x 15" raised garden bed`, 6.08, 4.25, 15, ft, in),
		rect("birdies-square", "Birdies Square", `Birdies brand 51" x 51" x 15" raised garden bed`, 4.25, 4.25, 15, ft, in),
		rect("shallow-square", "Shallow Square", `Shallow 4' x 4' x 6" raised bed for shallow-rooted plants`, 4, 4, 6, ft, in),
		rect("compact-square", "Compact Square", "Small 3' x 3' raised bed for limited spaces", 3, 3, 1, ft, ft),
		rect("large-square", "Large Square", "Spacious 5' x 5' raised bed for larger gardens", 5, 5, 1, ft, ft),
		rect("accessible-square", "Accessible Square", `Tall 4' x 4' x 24" raised bed for accessible gardening`, 4, 4, 24, ft, in),
		rect("birdies-medium-tall", "Birdies Medium Tall", `Birdies brand 5' x 3' x 29" raised garden bed`, 5, 3, 29, ft, in),
		rect("long-thin", "Long Thin", "Narrow 6' x 2' raised bed for borders", 6, 2, 1, ft, ft),
		rect("standard-rectangle", "Standard Rectangle", "Common 3' x 6' raised bed size", 6, 3, 1, ft, ft),
		rect("extra-long-rectangle", "Extra-Long Rectangle", "Extended 4' x 10' raised bed for larger gardens", 10, 4, 1, ft, ft),
		rect("small-balcony-bed", "Small Balcony Bed", "Compact 2' x 6' raised bed for balconies or small spaces", 6, 2, 1, ft, ft),
		rect("birdies-narrow-xl", "Birdies Narrow XL", `Birdies brand 102" x 24" x 15" raised garden bed`, 8.5, 2, 15, ft, in),
		rect("birdies-narrow-medium", "Birdies Narrow Medium", `Birdies brand 65" x 24" x 15" raised garden bed`, 5.42, 2, 15, ft, in),
		rect("birdies-large-tall", "Birdies Large Tall", `Large Birdies brand 6' x 6' x 30" raised garden bed`, 6, 6, 30, ft, in),
		rect("patio-narrow", "Patio Narrow", "Long narrow 8' x 2' raised bed for patios", 8, 2, 1, ft, ft),

		circle("round-small", "Round Small", `Small 36" diameter circular raised bed`, 3, 12, ft, in),
		circle("birdies-round-small", "Birdies Round Small", `Birdies brand 38" diameter x 15" tall raised bed`, 3.17, 15, ft, in),
		circle("round-medium", "Round Medium", `Medium 48" diameter circular raised bed`, 4, 12, ft, in),
	}
}
