package catalog

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
)

// Catalog is the read-only set of predefined beds. It is safe for concurrent use.
type Catalog struct {
	beds []Bed
	byID map[string]int
}

// New builds a catalog from the built-in beds followed by extra. Every bed must
// have a unique ID and dimensions the calculator accepts.
func New(calc calculator.Calculator, extra ...Bed) (*Catalog, error) {
	beds := append(defaultBeds(), extra...)

	c := &Catalog{
		beds: make([]Bed, 0, len(beds)),
		byID: make(map[string]int, len(beds)),
	}
	for _, bed := range beds {
		bed.ID = strings.TrimSpace(bed.ID)
		if bed.ID == "" {
			return nil, fmt.Errorf("bed %q: id is required", bed.Name)
		}
		if _, exists := c.byID[bed.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBed, bed.ID)
		}
		if !bed.Shape.Valid() {
			return nil, fmt.Errorf("bed %q: %w", bed.ID, ErrInvalidShape)
		}
		if _, err := bed.Volume(calc); err != nil {
			return nil, fmt.Errorf("bed %q: %w", bed.ID, err)
		}
		c.byID[bed.ID] = len(c.beds)
		c.beds = append(c.beds, bed.Clone())
	}

	return c, nil
}

// All returns every bed in catalog order.
func (c *Catalog) All() []Bed {
	out := make([]Bed, len(c.beds))
	for i, bed := range c.beds {
		out[i] = bed.Clone()
	}
	return out
}

// ByID returns a copy of the bed with the given ID.
func (c *Catalog) ByID(id string) (Bed, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Bed{}, fmt.Errorf("%w: %s", ErrBedNotFound, id)
	}
	return c.beds[idx].Clone(), nil
}

// ByShape returns the beds of one shape in catalog order.
func (c *Catalog) ByShape(shape Shape) ([]Bed, error) {
	if !shape.Valid() {
		return nil, ErrInvalidShape
	}
	out := make([]Bed, 0, len(c.beds))
	for _, bed := range c.beds {
		if bed.Shape == shape {
			out = append(out, bed.Clone())
		}
	}
	return out, nil
}

// Grouped returns the beds keyed by shape.
func (c *Catalog) Grouped() map[Shape][]Bed {
	grouped := make(map[Shape][]Bed, 2)
	for _, shape := range []Shape{Rectangular, Circular} {
		beds, _ := c.ByShape(shape)
		grouped[shape] = beds
	}
	return grouped
}

// Len returns the number of beds in the catalog.
func (c *Catalog) Len() int {
	return len(c.beds)
}
