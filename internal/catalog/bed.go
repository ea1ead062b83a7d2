package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
)

// Shape is the geometry of a garden bed.
type Shape string

const (
	Rectangular Shape = "rectangular"
	Circular    Shape = "circular"
)

var (
	// ErrBedNotFound is returned when no bed matches the requested ID.
	ErrBedNotFound = errors.New("garden bed not found")
	// ErrDuplicateBed is returned when two beds share an ID.
	ErrDuplicateBed = errors.New("duplicate garden bed id")
	// ErrInvalidShape is returned for shapes other than rectangular and circular.
	ErrInvalidShape = errors.New("shape must be rectangular or circular")
)

// Valid reports whether s is a supported shape.
func (s Shape) Valid() bool {
	return s == Rectangular || s == Circular
}

// ParseShape accepts a shape name in any case.
func ParseShape(raw string) (Shape, error) {
	shape := Shape(strings.ToLower(strings.TrimSpace(raw)))
	if !shape.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShape, raw)
	}
	return shape, nil
}

// Bed defines a garden bed. Exactly one of Rectangular or Circular is set,
// matching Shape.
type Bed struct {
	ID          string                            `json:"id" yaml:"id"`
	Name        string                            `json:"name" yaml:"name"`
	Description string                            `json:"description,omitempty" yaml:"description"`
	Shape       Shape                             `json:"shape" yaml:"shape"`
	Rectangular *calculator.RectangularDimensions `json:"rectangular,omitempty" yaml:"rectangular,omitempty"`
	Circular    *calculator.CircularDimensions    `json:"circular,omitempty" yaml:"circular,omitempty"`
}

// Volume computes the bed's volume, dispatching on its shape.
func (b Bed) Volume(calc calculator.Calculator) (calculator.VolumeResult, error) {
	switch b.Shape {
	case Rectangular:
		if b.Rectangular == nil || b.Circular != nil {
			return calculator.VolumeResult{}, fmt.Errorf("bed %q: %w", b.ID, calculator.ErrShapeMismatch)
		}
		return calc.RectangularVolume(*b.Rectangular)
	case Circular:
		if b.Circular == nil || b.Rectangular != nil {
			return calculator.VolumeResult{}, fmt.Errorf("bed %q: %w", b.ID, calculator.ErrShapeMismatch)
		}
		return calc.CircularVolume(*b.Circular)
	default:
		return calculator.VolumeResult{}, fmt.Errorf("bed %q: %w", b.ID, ErrInvalidShape)
	}
}

// Clone returns a deep copy so the caller owns its dimensions.
func (b Bed) Clone() Bed {
	out := b
	if b.Rectangular != nil {
		dims := *b.Rectangular
		out.Rectangular = &dims
	}
	if b.Circular != nil {
		dims := *b.Circular
		out.Circular = &dims
	}
	return out
}

// DimensionsLabel renders the bed's dimensions, e.g. "8ft × 4ft × 1ft".
func (b Bed) DimensionsLabel() string {
	switch {
	case b.Shape == Rectangular && b.Rectangular != nil:
		d := b.Rectangular
		return measure(d.Length, d.LengthWidthUnit) + " × " +
			measure(d.Width, d.LengthWidthUnit) + " × " +
			measure(d.Height, d.HeightUnit)
	case b.Shape == Circular && b.Circular != nil:
		d := b.Circular
		return measure(d.Diameter, d.DiameterUnit) + " diameter × " + measure(d.Height, d.HeightUnit)
	}
	return ""
}

// NewCustomRectangular builds a user-defined rectangular bed.
func NewCustomRectangular(dims calculator.RectangularDimensions) Bed {
	return Bed{
		ID: "custom-rectangular",
		Name: fmt.Sprintf("Custom Rectangular (%s × %s)",
			measure(dims.Length, dims.LengthWidthUnit),
			measure(dims.Width, dims.LengthWidthUnit)),
		Shape:       Rectangular,
		Rectangular: &dims,
	}
}

// NewCustomCircular builds a user-defined circular bed.
func NewCustomCircular(dims calculator.CircularDimensions) Bed {
	return Bed{
		ID:       "custom-circular",
		Name:     fmt.Sprintf("Custom Circular (%s diameter)", measure(dims.Diameter, dims.DiameterUnit)),
		Shape:    Circular,
		Circular: &dims,
	}
}

func measure(v float64, unit calculator.LengthUnit) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit.Symbol()
}
