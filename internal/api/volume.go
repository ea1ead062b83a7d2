package api

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
	"github.com/eugenenazirov/soil-calculator/internal/metrics"
)

// dimensionsRequest describes a custom bed. Missing numeric fields are decoded
// as nil and reported as absent by the calculator.
type dimensionsRequest struct {
	Shape           string   `json:"shape"`
	Length          *float64 `json:"length"`
	Width           *float64 `json:"width"`
	Height          *float64 `json:"height"`
	Diameter        *float64 `json:"diameter"`
	LengthWidthUnit string   `json:"lengthWidthUnit"`
	DiameterUnit    string   `json:"diameterUnit"`
	HeightUnit      string   `json:"heightUnit"`
}

// bed builds the custom bed described by the request. Units left empty mean feet.
func (d dimensionsRequest) bed() (catalog.Bed, error) {
	shape, err := catalog.ParseShape(d.Shape)
	if err != nil {
		return catalog.Bed{}, err
	}

	switch shape {
	case catalog.Circular:
		return catalog.NewCustomCircular(calculator.CircularDimensions{
			Diameter:     valueOrNaN(d.Diameter),
			Height:       valueOrNaN(d.Height),
			DiameterUnit: lengthUnit(d.DiameterUnit),
			HeightUnit:   lengthUnit(d.HeightUnit),
		}), nil
	default:
		return catalog.NewCustomRectangular(calculator.RectangularDimensions{
			Length:          valueOrNaN(d.Length),
			Width:           valueOrNaN(d.Width),
			Height:          valueOrNaN(d.Height),
			LengthWidthUnit: lengthUnit(d.LengthWidthUnit),
			HeightUnit:      lengthUnit(d.HeightUnit),
		}), nil
	}
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func lengthUnit(raw string) calculator.LengthUnit {
	if strings.TrimSpace(raw) == "" {
		return calculator.Feet
	}
	return calculator.ParseLengthUnit(raw)
}

type volumeRequest struct {
	dimensionsRequest
	DisplayUnit string `json:"displayUnit"`
}

type bedResponse struct {
	catalog.Bed
	Dimensions string                  `json:"dimensions"`
	Volume     calculator.VolumeResult `json:"volume"`
}

type bedsResponse struct {
	Shape  catalog.Shape                   `json:"shape,omitempty"`
	Beds   []bedResponse                   `json:"beds,omitempty"`
	Groups map[catalog.Shape][]bedResponse `json:"groups,omitempty"`
	Count  int                             `json:"count"`
}

type volumeResponse struct {
	Bed         bedResponse           `json:"bed"`
	DisplayUnit calculator.VolumeUnit `json:"displayUnit"`
	Formatted   string                `json:"formatted"`
}

type bagsRequest struct {
	TotalCubicFeet *float64 `json:"totalCubicFeet"`
	BagSize        *float64 `json:"bagSize"`
}

type bagsResponse struct {
	TotalCubicFeet float64 `json:"totalCubicFeet"`
	BagSize        float64 `json:"bagSize"`
	BagsRequired   int     `json:"bagsRequired"`
}

func (h *Handler) handleListBeds(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("shape"); raw != "" {
		shape, err := catalog.ParseShape(raw)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		beds, err := h.catalog.ByShape(shape)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out, err := h.describeBeds(beds)
		if err != nil {
			writeInternalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bedsResponse{Shape: shape, Beds: out, Count: len(out)})
		return
	}

	resp := bedsResponse{Groups: make(map[catalog.Shape][]bedResponse, 2)}
	for shape, beds := range h.catalog.Grouped() {
		out, err := h.describeBeds(beds)
		if err != nil {
			writeInternalError(w, err)
			return
		}
		resp.Groups[shape] = out
		resp.Count += len(out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetBed(w http.ResponseWriter, r *http.Request) {
	bed, err := h.catalog.ByID(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out, err := h.describeBed(bed)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	displayUnit := h.defaults.DisplayUnit
	if req.DisplayUnit != "" {
		displayUnit = parseVolumeUnit(req.DisplayUnit)
		if !displayUnit.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid display unit", "unsupported display unit "+req.DisplayUnit, "displayUnit")
			return
		}
	}

	bed, err := req.bed()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out, err := h.calculateBed(bed)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, volumeResponse{
		Bed:         out,
		DisplayUnit: displayUnit,
		Formatted:   calculator.Format(&out.Volume, displayUnit),
	})
}

func (h *Handler) handleBags(w http.ResponseWriter, r *http.Request) {
	var req bagsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	total := valueOrNaN(req.TotalCubicFeet)
	if math.IsNaN(total) || math.IsInf(total, 0) {
		writeDomainError(w, calculator.NewDimensionError("totalCubicFeet", calculator.ErrInvalidInput))
		return
	}
	if total < 0 {
		writeDomainError(w, calculator.NewDimensionError("totalCubicFeet", calculator.ErrInvalidDimension))
		return
	}

	bagSize := h.bagSizeOrDefault(req.BagSize)
	bags, err := calculator.BagsRequired(total, bagSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bagsResponse{
		TotalCubicFeet: total,
		BagSize:        bagSize,
		BagsRequired:   bags,
	})
}

// bagSizeOrDefault keeps the configured bag size when the requested one is
// missing or not a positive number.
func (h *Handler) bagSizeOrDefault(size *float64) float64 {
	if size == nil || math.IsNaN(*size) || math.IsInf(*size, 0) || *size <= 0 {
		return h.defaults.BagSize
	}
	return *size
}

// describeBed computes the bed's volume for a response.
func (h *Handler) describeBed(bed catalog.Bed) (bedResponse, error) {
	volume, err := bed.Volume(h.calculator)
	if err != nil {
		return bedResponse{}, err
	}
	return bedResponse{
		Bed:        bed,
		Dimensions: bed.DimensionsLabel(),
		Volume:     volume,
	}, nil
}

// calculateBed is describeBed for user-requested calculations. Only these are
// counted in the volume calculation metrics; catalog reads are not.
func (h *Handler) calculateBed(bed catalog.Bed) (bedResponse, error) {
	out, err := h.describeBed(bed)
	switch {
	case err == nil:
		metrics.RecordVolumeCalculation(string(bed.Shape), "ok")
	case errors.Is(err, calculator.ErrDimensionTooLarge):
		metrics.RecordVolumeCalculation(string(bed.Shape), "too_large")
	default:
		metrics.RecordVolumeCalculation(string(bed.Shape), "invalid")
	}
	return out, err
}

func (h *Handler) describeBeds(beds []catalog.Bed) ([]bedResponse, error) {
	out := make([]bedResponse, 0, len(beds))
	for _, bed := range beds {
		resp, err := h.describeBed(bed)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
