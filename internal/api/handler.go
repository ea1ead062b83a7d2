package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
	"github.com/eugenenazirov/soil-calculator/internal/selection"
	"github.com/eugenenazirov/soil-calculator/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Defaults applied when a request leaves a setting out.
type Defaults struct {
	BagSize     float64
	DisplayUnit calculator.VolumeUnit
	FillFactor  float64
}

// Handler wires calculator, catalog and session storage into HTTP handlers.
type Handler struct {
	calculator calculator.Calculator
	catalog    *catalog.Catalog
	storage    storage.Storage
	defaults   Defaults
	maxEntries int

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithDefaults overrides the bag size, display unit and fill factor used when
// a request does not supply them. Invalid values are ignored.
func WithDefaults(d Defaults) HandlerOption {
	return func(h *Handler) {
		if d.BagSize > 0 {
			h.defaults.BagSize = d.BagSize
		}
		if d.DisplayUnit.Valid() {
			h.defaults.DisplayUnit = d.DisplayUnit
		}
		if selection.ValidFillFactor(d.FillFactor) {
			h.defaults.FillFactor = d.FillFactor
		}
	}
}

// WithMaxEntries overrides selection.DefaultMaxEntries. Non-positive values are ignored.
func WithMaxEntries(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc calculator.Calculator, beds *catalog.Catalog, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		catalog:    beds,
		storage:    store,
		defaults: Defaults{
			BagSize:     1,
			DisplayUnit: calculator.CubicFeet,
			FillFactor:  1,
		},
		maxEntries: selection.DefaultMaxEntries,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// decodeJSON decodes an optional request body. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseVolumeUnit(raw string) calculator.VolumeUnit {
	return calculator.VolumeUnit(strings.ToLower(strings.TrimSpace(raw)))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, field ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(field) > 0 {
		resp.Field = field[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

func writeBadJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
}

// writeDomainError maps errors from the domain packages to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	var field string
	var dimErr *calculator.DimensionError
	if errors.As(err, &dimErr) {
		field = dimErr.Field
	}

	switch {
	case errors.Is(err, calculator.ErrDimensionTooLarge):
		writeError(w, http.StatusUnprocessableEntity, "Dimension too large", err.Error(), field)
	case errors.Is(err, calculator.ErrTooManyBags):
		writeError(w, http.StatusUnprocessableEntity, "Bag size too small", err.Error(), "bagSize")
	case errors.Is(err, calculator.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input", err.Error(), field)
	case errors.Is(err, calculator.ErrInvalidDimension),
		errors.Is(err, calculator.ErrShapeMismatch):
		writeError(w, http.StatusBadRequest, "Invalid dimensions", err.Error(), field)
	case errors.Is(err, calculator.ErrNegativePrice):
		writeError(w, http.StatusBadRequest, "Invalid price", err.Error(), "price")
	case errors.Is(err, catalog.ErrInvalidShape):
		writeError(w, http.StatusBadRequest, "Invalid shape", err.Error(), "shape")
	case errors.Is(err, selection.ErrInvalidFillFactor):
		writeError(w, http.StatusBadRequest, "Invalid fill factor", err.Error(), "fillFactor")
	case errors.Is(err, selection.ErrInvalidDisplayUnit):
		writeError(w, http.StatusBadRequest, "Invalid display unit", err.Error(), "displayUnit")
	case errors.Is(err, catalog.ErrBedNotFound):
		writeError(w, http.StatusNotFound, "Bed not found", err.Error())
	case errors.Is(err, storage.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found", err.Error())
	case errors.Is(err, selection.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "Entry not found", err.Error())
	case errors.Is(err, selection.ErrTooManyEntries):
		writeError(w, http.StatusUnprocessableEntity, "Selection full", err.Error())
	case errors.Is(err, storage.ErrTooManySessions):
		writeError(w, http.StatusServiceUnavailable, "Service unavailable", err.Error())
	default:
		writeInternalError(w, err)
	}
}
