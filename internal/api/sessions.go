package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
	"github.com/eugenenazirov/soil-calculator/internal/metrics"
	"github.com/eugenenazirov/soil-calculator/internal/selection"
	"github.com/eugenenazirov/soil-calculator/internal/storage"
)

type createSessionRequest struct {
	FillFactor  *float64 `json:"fillFactor"`
	DisplayUnit string   `json:"displayUnit"`
}

type settingsRequest struct {
	FillFactor  *float64 `json:"fillFactor"`
	DisplayUnit *string  `json:"displayUnit"`
}

type addEntryRequest struct {
	BedID      string             `json:"bedId"`
	Custom     *dimensionsRequest `json:"custom"`
	FillFactor *float64           `json:"fillFactor"`
}

type entryResponse struct {
	selection.Entry
	Dimensions      string  `json:"dimensions"`
	FilledCubicFeet float64 `json:"filledCubicFeet"`
}

type sessionResponse struct {
	ID             string                   `json:"id"`
	DisplayUnit    calculator.VolumeUnit    `json:"displayUnit"`
	FillFactor     float64                  `json:"fillFactor"`
	Entries        []entryResponse          `json:"entries"`
	Total          *calculator.VolumeResult `json:"total"`
	FormattedTotal string                   `json:"formattedTotal"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type addEntryResponse struct {
	Entry   entryResponse   `json:"entry"`
	Session sessionResponse `json:"session"`
}

type estimateResponse struct {
	TotalCubicFeet float64               `json:"totalCubicFeet"`
	FormattedTotal string                `json:"formattedTotal"`
	BagSize        float64               `json:"bagSize"`
	BagsRequired   int                   `json:"bagsRequired"`
	PricePerUnit   *float64              `json:"pricePerUnit,omitempty"`
	PriceUnit      calculator.VolumeUnit `json:"priceUnit,omitempty"`
	Cost           *float64              `json:"cost,omitempty"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	fillFactor := h.defaults.FillFactor
	if req.FillFactor != nil {
		fillFactor = *req.FillFactor
	}
	displayUnit := h.defaults.DisplayUnit
	if req.DisplayUnit != "" {
		displayUnit = parseVolumeUnit(req.DisplayUnit)
	}

	state, err := selection.NewState(displayUnit, fillFactor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	session, err := h.storage.Create(state)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.storage.Get(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Delete(r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if req.FillFactor == nil && req.DisplayUnit == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "fillFactor or displayUnit is required")
		return
	}

	session, err := h.storage.Update(r.PathValue("id"), func(state selection.State) (selection.State, error) {
		if len(state.Entries) >= h.maxEntries {
			return state, fmt.Errorf("%w: limit is %d", selection.ErrTooManyEntries, h.maxEntries)
		}
		var err error
		if req.FillFactor != nil {
			if state, err = state.WithFillFactor(*req.FillFactor); err != nil {
				return state, err
			}
		}
		if req.DisplayUnit != nil {
			if state, err = state.WithDisplayUnit(parseVolumeUnit(*req.DisplayUnit)); err != nil {
				return state, err
			}
		}
		return state, nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (h *Handler) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	bedID := strings.TrimSpace(req.BedID)
	if (bedID == "") == (req.Custom == nil) {
		writeError(w, http.StatusBadRequest, "Invalid request", "exactly one of bedId or custom is required")
		return
	}

	var bed catalog.Bed
	var err error
	if bedID != "" {
		bed, err = h.catalog.ByID(bedID)
	} else {
		bed, err = req.Custom.bed()
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	described, err := h.calculateBed(bed)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var entry selection.Entry
	session, err := h.storage.Update(r.PathValue("id"), func(state selection.State) (selection.State, error) {
		var err error
		if req.FillFactor != nil {
			state, entry, err = state.AddWithFillFactor(bed, described.Volume, *req.FillFactor)
		} else {
			state, entry, err = state.Add(bed, described.Volume)
		}
		return state, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.RecordSelectionChange("add")

	writeJSON(w, http.StatusCreated, addEntryResponse{
		Entry:   newEntryResponse(entry),
		Session: newSessionResponse(session),
	})
}

func (h *Handler) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("entryId")
	session, err := h.storage.Update(r.PathValue("id"), func(state selection.State) (selection.State, error) {
		return state.Remove(entryID)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.RecordSelectionChange("remove")
	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (h *Handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	session, err := h.storage.Get(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	query := r.URL.Query()
	var bagSize *float64
	if raw := query.Get("bagSize"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			bagSize = &v
		}
	}

	total, ok := session.State.Total()
	var totalPtr *calculator.VolumeResult
	if ok {
		totalPtr = &total
	}

	resp := estimateResponse{
		TotalCubicFeet: total.CubicFeet,
		FormattedTotal: calculator.Format(totalPtr, session.State.DisplayUnit),
		BagSize:        h.bagSizeOrDefault(bagSize),
	}
	if resp.BagsRequired, err = calculator.BagsRequired(resp.TotalCubicFeet, resp.BagSize); err != nil {
		writeDomainError(w, err)
		return
	}

	if raw := query.Get("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			price = math.NaN()
		}
		priceUnit := session.State.DisplayUnit
		if rawUnit := query.Get("priceUnit"); rawUnit != "" {
			priceUnit = parseVolumeUnit(rawUnit)
			if !priceUnit.Valid() {
				writeError(w, http.StatusBadRequest, "Invalid price unit", "unsupported price unit "+rawUnit, "priceUnit")
				return
			}
		}

		cost, err := h.calculator.SoilCost(total, price, priceUnit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp.PricePerUnit = &price
		resp.PriceUnit = priceUnit
		resp.Cost = &cost
	}

	writeJSON(w, http.StatusOK, resp)
}

func newEntryResponse(e selection.Entry) entryResponse {
	return entryResponse{
		Entry:           e,
		Dimensions:      e.Bed.DimensionsLabel(),
		FilledCubicFeet: e.FilledCubicFeet(),
	}
}

func newSessionResponse(s storage.Session) sessionResponse {
	resp := sessionResponse{
		ID:          s.ID,
		DisplayUnit: s.State.DisplayUnit,
		FillFactor:  s.State.FillFactor,
		Entries:     make([]entryResponse, 0, len(s.State.Entries)),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	for _, e := range s.State.Entries {
		resp.Entries = append(resp.Entries, newEntryResponse(e))
	}
	if total, ok := s.State.Total(); ok {
		resp.Total = &total
		resp.FormattedTotal = calculator.Format(&total, s.State.DisplayUnit)
	} else {
		resp.FormattedTotal = calculator.Format(nil, s.State.DisplayUnit)
	}
	return resp
}
