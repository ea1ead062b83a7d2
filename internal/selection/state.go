package selection

import (
	"fmt"
	"slices"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
)

// State is a user's working selection together with the controls that apply
// to it. FillFactor is the value snapshotted into the next added entry.
type State struct {
	Entries     []Entry               `json:"entries"`
	DisplayUnit calculator.VolumeUnit `json:"displayUnit"`
	FillFactor  float64               `json:"fillFactor"`
}

// NewState returns an empty selection with the given controls.
func NewState(displayUnit calculator.VolumeUnit, fillFactor float64) (State, error) {
	if !displayUnit.Valid() {
		return State{}, fmt.Errorf("%w: %q", ErrInvalidDisplayUnit, displayUnit)
	}
	if !ValidFillFactor(fillFactor) {
		return State{}, fmt.Errorf("%w: got %v", ErrInvalidFillFactor, fillFactor)
	}
	return State{
		Entries:     []Entry{},
		DisplayUnit: displayUnit,
		FillFactor:  fillFactor,
	}, nil
}

// Add appends bed using the current global fill factor.
func (s State) Add(bed catalog.Bed, volume calculator.VolumeResult) (State, Entry, error) {
	return s.AddWithFillFactor(bed, volume, s.FillFactor)
}

// AddWithFillFactor appends bed with an explicit fill factor.
func (s State) AddWithFillFactor(bed catalog.Bed, volume calculator.VolumeResult, fillFactor float64) (State, Entry, error) {
	entries, entry, err := AddEntry(s.Entries, bed, volume, fillFactor)
	if err != nil {
		return s, Entry{}, err
	}
	s.Entries = entries
	return s, entry, nil
}

// Remove drops the entry with the given ID.
func (s State) Remove(entryID string) (State, error) {
	entries, err := RemoveEntry(s.Entries, entryID)
	if err != nil {
		return s, err
	}
	s.Entries = entries
	return s, nil
}

// WithFillFactor changes the global fill factor. Existing entries keep theirs.
func (s State) WithFillFactor(fillFactor float64) (State, error) {
	if !ValidFillFactor(fillFactor) {
		return s, fmt.Errorf("%w: got %v", ErrInvalidFillFactor, fillFactor)
	}
	s.Entries = slices.Clone(s.Entries)
	s.FillFactor = fillFactor
	return s, nil
}

// WithDisplayUnit changes the unit totals are tagged with.
func (s State) WithDisplayUnit(unit calculator.VolumeUnit) (State, error) {
	if !unit.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidDisplayUnit, unit)
	}
	s.Entries = slices.Clone(s.Entries)
	s.DisplayUnit = unit
	return s, nil
}

// Total is the running total for the selection; false when it is empty.
func (s State) Total() (calculator.VolumeResult, bool) {
	return RecomputeTotal(s.Entries, s.DisplayUnit)
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	out.Entries = make([]Entry, len(s.Entries))
	for i, e := range s.Entries {
		e.Bed = e.Bed.Clone()
		out.Entries[i] = e
	}
	return out
}
