package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const tolerance = 0.001

func TestToFeet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		unit  LengthUnit
		want  float64
	}{
		{name: "InchesToFeet", value: 12, unit: Inches, want: 1},
		{name: "FeetIdentity", value: 3, unit: Feet, want: 3},
		{name: "CentimetersToFeet", value: 30.48, unit: Centimeters, want: 1},
		{name: "MetersToFeet", value: 1, unit: Meters, want: 3.28084},
		{name: "UnknownUnitFallsBackToFeet", value: 7, unit: LengthUnit("yards"), want: 7},
	}

	calc := New()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := calc.ToFeet(tc.value, tc.unit)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, tolerance)
		})
	}
}

func TestToFeetRejectsMissingValue(t *testing.T) {
	t.Parallel()

	calc := New()
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := calc.ToFeet(v, Feet)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestToFeetIdentities(t *testing.T) {
	t.Parallel()

	calc := New()
	for _, l := range []float64{0.25, 1, 3.7, 42, 999} {
		ft, err := calc.ToFeet(l, Feet)
		require.NoError(t, err)
		assert.InDelta(t, l, ft, tolerance)

		ft, err = calc.ToFeet(12*l, Inches)
		require.NoError(t, err)
		assert.InDelta(t, l, ft, tolerance)

		ft, err = calc.ToFeet(30.48*l, Centimeters)
		require.NoError(t, err)
		assert.InDelta(t, l, ft, tolerance)
	}
}

func TestToFeetRoundTrip(t *testing.T) {
	t.Parallel()

	fromFeet := map[LengthUnit]func(float64) float64{
		Inches:      func(ft float64) float64 { return ft * inchesPerFoot },
		Feet:        func(ft float64) float64 { return ft },
		Centimeters: func(ft float64) float64 { return ft * centimetersPerFoot },
		Meters:      func(ft float64) float64 { return ft / feetPerMeter },
	}

	calc := New()
	for unit, back := range fromFeet {
		for _, v := range []float64{0.1, 1, 17.5, 250, 999.99} {
			ft, err := calc.ToFeet(v, unit)
			require.NoError(t, err)
			assert.InDelta(t, v, back(ft), 0.01, "unit %s value %v", unit, v)
		}
	}
}

func TestToFeetLogsUnknownUnit(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	calc := New(WithLogger(zap.New(core)))

	got, err := calc.ToFeet(2.5, LengthUnit("furlongs"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	entries := logs.FilterMessage("unknown length unit, defaulting to feet").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "furlongs", entries[0].ContextMap()["unit"])
}

func TestParseLengthUnit(t *testing.T) {
	t.Parallel()

	cases := map[string]LengthUnit{
		"in":          Inches,
		" Inches ":    Inches,
		"ft":          Feet,
		"FEET":        Feet,
		"cm":          Centimeters,
		"centimeters": Centimeters,
		"m":           Meters,
		"meters":      Meters,
		"yards":       LengthUnit("yards"),
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLengthUnit(raw), raw)
	}
	assert.False(t, LengthUnit("yards").Valid())
	assert.True(t, Centimeters.Valid())
}

func TestRectangularVolume(t *testing.T) {
	t.Parallel()

	calc := New()

	got, err := calc.RectangularVolume(RectangularDimensions{
		Length: 4, Width: 3, Height: 1, LengthWidthUnit: Feet, HeightUnit: Feet,
	})
	require.NoError(t, err)
	assert.Equal(t, VolumeResult{
		CubicFeet:   12,
		CubicYards:  0.44,
		CubicMeters: 0.34,
		Liters:      339.8,
		Gallons:     89.77,
		DisplayUnit: CubicFeet,
	}, got)

	swapped, err := calc.RectangularVolume(RectangularDimensions{
		Length: 3, Width: 4, Height: 1, LengthWidthUnit: Feet, HeightUnit: Feet,
	})
	require.NoError(t, err)
	assert.Equal(t, got.CubicFeet, swapped.CubicFeet)
}

func TestRectangularVolumeUnitEquivalence(t *testing.T) {
	t.Parallel()

	calc := New()

	inches, err := calc.RectangularVolume(RectangularDimensions{
		Length: 48, Width: 36, Height: 12, LengthWidthUnit: Inches, HeightUnit: Inches,
	})
	require.NoError(t, err)

	feet, err := calc.RectangularVolume(RectangularDimensions{
		Length: 4, Width: 3, Height: 1, LengthWidthUnit: Feet, HeightUnit: Feet,
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, inches.CubicFeet)
	assert.Equal(t, feet, inches)
}

func TestRectangularVolumeMixedUnits(t *testing.T) {
	t.Parallel()

	got, err := New().RectangularVolume(RectangularDimensions{
		Length: 4, Width: 4, Height: 6, LengthWidthUnit: Feet, HeightUnit: Inches,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.CubicFeet)
}

func TestCircularVolume(t *testing.T) {
	t.Parallel()

	calc := New()

	got, err := calc.CircularVolume(CircularDimensions{
		Diameter: 4, Height: 1, DiameterUnit: Feet, HeightUnit: Feet,
	})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*4, got.CubicFeet, 0.01)
	assert.Equal(t, 12.57, got.CubicFeet)
	assert.Equal(t, CubicFeet, got.DisplayUnit)

	inches, err := calc.CircularVolume(CircularDimensions{
		Diameter: 4, Height: 12, DiameterUnit: Feet, HeightUnit: Inches,
	})
	require.NoError(t, err)
	assert.Equal(t, got, inches)
}

func TestVolumeValidation(t *testing.T) {
	t.Parallel()

	calc := New()

	tests := []struct {
		name      string
		run       func() (VolumeResult, error)
		wantErr   error
		wantField string
	}{
		{
			name: "NegativeLength",
			run: func() (VolumeResult, error) {
				return calc.RectangularVolume(RectangularDimensions{Length: -1, Width: 3, Height: 1, LengthWidthUnit: Feet, HeightUnit: Feet})
			},
			wantErr:   ErrInvalidDimension,
			wantField: "length",
		},
		{
			name: "ZeroWidth",
			run: func() (VolumeResult, error) {
				return calc.RectangularVolume(RectangularDimensions{Length: 1, Width: 0, Height: 1, LengthWidthUnit: Feet, HeightUnit: Feet})
			},
			wantErr:   ErrInvalidDimension,
			wantField: "width",
		},
		{
			name: "ZeroDiameter",
			run: func() (VolumeResult, error) {
				return calc.CircularVolume(CircularDimensions{Diameter: 0, Height: 1, DiameterUnit: Feet, HeightUnit: Feet})
			},
			wantErr:   ErrInvalidDimension,
			wantField: "diameter",
		},
		{
			name: "MissingHeight",
			run: func() (VolumeResult, error) {
				return calc.CircularVolume(CircularDimensions{Diameter: 2, Height: math.NaN(), DiameterUnit: Feet, HeightUnit: Feet})
			},
			wantErr:   ErrInvalidInput,
			wantField: "height",
		},
		{
			name: "LengthTooLarge",
			run: func() (VolumeResult, error) {
				return calc.RectangularVolume(RectangularDimensions{Length: 1001, Width: 3, Height: 1, LengthWidthUnit: Feet, HeightUnit: Feet})
			},
			wantErr:   ErrDimensionTooLarge,
			wantField: "length",
		},
		{
			name: "DiameterTooLargeAfterConversion",
			run: func() (VolumeResult, error) {
				return calc.CircularVolume(CircularDimensions{Diameter: 305, Height: 1, DiameterUnit: Meters, HeightUnit: Feet})
			},
			wantErr:   ErrDimensionTooLarge,
			wantField: "diameter",
		},
		{
			name: "HeightTooLargeInInches",
			run: func() (VolumeResult, error) {
				return calc.RectangularVolume(RectangularDimensions{Length: 1, Width: 1, Height: 12001, LengthWidthUnit: Feet, HeightUnit: Inches})
			},
			wantErr:   ErrDimensionTooLarge,
			wantField: "height",
		},
		{
			name: "SignCheckedBeforeBound",
			run: func() (VolumeResult, error) {
				return calc.RectangularVolume(RectangularDimensions{Length: 5000, Width: 3, Height: -2, LengthWidthUnit: Feet, HeightUnit: Feet})
			},
			wantErr:   ErrInvalidDimension,
			wantField: "height",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.run()
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, VolumeResult{}, got)

			var dimErr *DimensionError
			require.True(t, errors.As(err, &dimErr))
			assert.Equal(t, tc.wantField, dimErr.Field)
		})
	}
}

func TestVolumeAtExactBound(t *testing.T) {
	t.Parallel()

	_, err := New().RectangularVolume(RectangularDimensions{
		Length: 12000, Width: 1, Height: 1, LengthWidthUnit: Inches, HeightUnit: Feet,
	})
	assert.NoError(t, err)
}

func TestFromCubicFeetRoundsEachFieldIndependently(t *testing.T) {
	t.Parallel()

	got := FromCubicFeet(1, Liters)

	assert.Equal(t, 1.0, got.CubicFeet)
	assert.Equal(t, 0.04, got.CubicYards)
	assert.Equal(t, 0.03, got.CubicMeters)
	// liters derive from the unrounded cubic meters, not from 0.03
	assert.Equal(t, 28.32, got.Liters)
	assert.Equal(t, 7.48, got.Gallons)
	assert.Equal(t, Liters, got.DisplayUnit)
}

func TestRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.35, Round(2.345))
	assert.Equal(t, 12.57, Round(12.566370614359172))
	assert.Equal(t, 0.0, Round(0.001))
	assert.True(t, math.IsNaN(Round(math.NaN())))
}

func BenchmarkRectangularVolume(b *testing.B) {
	calc := New()
	dims := RectangularDimensions{Length: 83, Width: 43, Height: 15, LengthWidthUnit: Inches, HeightUnit: Inches}
	for i := 0; i < b.N; i++ {
		if _, err := calc.RectangularVolume(dims); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
