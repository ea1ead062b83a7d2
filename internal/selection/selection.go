// Package selection aggregates the garden beds a user has picked. All
// operations take a value and return a new one; inputs are never mutated.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
)

var (
	// ErrInvalidFillFactor is returned for fill factors outside FillFactors.
	ErrInvalidFillFactor = errors.New("fill factor must be one of 0.25, 0.5, 0.75 or 1")
	// ErrInvalidDisplayUnit is returned for unsupported display units.
	ErrInvalidDisplayUnit = errors.New("display unit must be cubic_feet, cubic_yards, cubic_meters, liters or gallons")
	// ErrEntryNotFound is returned when removing an entry that is not in the selection.
	ErrEntryNotFound = errors.New("bed entry not found")
	// ErrTooManyEntries is returned when a selection already holds the maximum number of entries.
	ErrTooManyEntries = errors.New("selection has reached the maximum number of entries")
)

// DefaultMaxEntries caps the number of entries in one selection.
const DefaultMaxEntries = 500

// FillFactors lists the accepted fractions of full bed depth.
var FillFactors = []float64{0.25, 0.5, 0.75, 1}

var newInstanceID = func() string {
	return uuid.NewString()
}

// ValidFillFactor reports whether f is an accepted fill factor.
func ValidFillFactor(f float64) bool {
	return slices.Contains(FillFactors, f)
}

// Entry is one bed in a selection. FillFactor is fixed when the entry is added.
type Entry struct {
	ID         string                  `json:"id"`
	Bed        catalog.Bed             `json:"bed"`
	Volume     calculator.VolumeResult `json:"volume"`
	FillFactor float64                 `json:"fillFactor"`
}

// FilledCubicFeet is the entry's contribution to a total, rounded to two decimals.
func (e Entry) FilledCubicFeet() float64 {
	return calculator.Round(e.Volume.CubicFeet * e.FillFactor)
}

// AddEntry appends a new entry for bed with a fresh instance ID. The same bed
// may be added any number of times.
func AddEntry(entries []Entry, bed catalog.Bed, volume calculator.VolumeResult, fillFactor float64) ([]Entry, Entry, error) {
	if !ValidFillFactor(fillFactor) {
		return entries, Entry{}, fmt.Errorf("%w: got %v", ErrInvalidFillFactor, fillFactor)
	}

	entry := Entry{
		ID:         bed.ID + "-" + newInstanceID(),
		Bed:        bed.Clone(),
		Volume:     volume,
		FillFactor: fillFactor,
	}

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, entry)
	return out, entry, nil
}

// RemoveEntry returns entries without the entry whose ID is entryID.
func RemoveEntry(entries []Entry, entryID string) ([]Entry, error) {
	idx := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == entryID })
	if idx < 0 {
		return entries, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}

	out := make([]Entry, 0, len(entries)-1)
	out = append(out, entries[:idx]...)
	out = append(out, entries[idx+1:]...)
	return out, nil
}

// RecomputeTotal sums each entry's fill-adjusted cubic feet, rounding every
// term before summing, and derives the other units from that sum. The second
// return value is false when there are no entries.
func RecomputeTotal(entries []Entry, displayUnit calculator.VolumeUnit) (calculator.VolumeResult, bool) {
	if len(entries) == 0 {
		return calculator.VolumeResult{}, false
	}

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.FilledCubicFeet()))
	}
	return calculator.FromCubicFeet(sum.InexactFloat64(), displayUnit), true
}
