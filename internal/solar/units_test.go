package solar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnergyUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    EnergyUnit
		wantErr bool
	}{
		{"", EnergyKWh, false},
		{"kWh", EnergyKWh, false},
		{"KWH", EnergyKWh, false},
		{" mwh ", EnergyMWh, false},
		{"GWh", EnergyGWh, false},
		{"TWh", "", true},
		{"joules", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnergyUnit(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEmissionsUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    EmissionsUnit
		wantErr bool
	}{
		{"", EmissionsKg, false},
		{"kg", EmissionsKg, false},
		{"kg CO₂", EmissionsKg, false},
		{"KG CO2e", EmissionsKg, false},
		{"tons", EmissionsTons, false},
		{"tons CO₂", EmissionsTons, false},
		{"t", EmissionsTons, false},
		{"tonnes", EmissionsTons, false},
		{"lbs", "", true},
		{"grams", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEmissionsUnit(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	kwh, err := NormalizeEnergy(50, EnergyMWh)
	require.NoError(t, err)
	assert.InDelta(t, 50000.0, kwh, tolerance)

	kwh, err = NormalizeEnergy(0.05, EnergyGWh)
	require.NoError(t, err)
	assert.InDelta(t, 50000.0, kwh, tolerance)

	kg, err := NormalizeEmissions(500, EmissionsTons)
	require.NoError(t, err)
	assert.InDelta(t, 500000.0, kg, tolerance)

	_, err = NormalizeEnergy(math.Inf(1), EnergyKWh)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormalizeEnergy(math.MaxFloat64, EnergyGWh)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormalizeEmissions(1, "pounds")
	require.ErrorIs(t, err, ErrInvalidUnit)
}

func TestConvert_RoundTrip(t *testing.T) {
	for _, from := range EnergyUnits {
		for _, to := range EnergyUnits {
			v, err := ConvertEnergy(1234.5, from, to)
			require.NoError(t, err)
			back, err := ConvertEnergy(v, to, from)
			require.NoError(t, err)
			assert.InEpsilon(t, 1234.5, back, 1e-12, "%s -> %s", from, to)
		}
	}
	for _, from := range EmissionsUnits {
		for _, to := range EmissionsUnits {
			v, err := ConvertEmissions(42, from, to)
			require.NoError(t, err)
			back, err := ConvertEmissions(v, to, from)
			require.NoError(t, err)
			assert.InEpsilon(t, 42.0, back, 1e-12, "%s -> %s", from, to)
		}
	}
}

func TestEmissionsUnitLabel(t *testing.T) {
	assert.Equal(t, "kg CO₂", EmissionsKg.Label())
	assert.Equal(t, "tons CO₂", EmissionsTons.Label())
}
