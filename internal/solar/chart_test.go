package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartFor(t *testing.T) {
	t.Run("partial offset", func(t *testing.T) {
		res, err := ComputeOffset(OffsetInput{PanelCount: 3805, EnergyProduced: 50000, CurrentEmissions: 500000})
		require.NoError(t, err)

		got := ChartFor(res)
		assert.Equal(t, ChartTitle, got.Title)
		assert.InDelta(t, 20850.0, got.Offset.Value, tolerance)
		assert.InDelta(t, 479150.0, got.Remaining.Value, tolerance)
		assert.InDelta(t, 4.17, got.Offset.Percent, tolerance)
		assert.InDelta(t, 95.83, got.Remaining.Percent, tolerance)
		assert.InDelta(t, 500000.0, got.Total(), tolerance)
		assert.Equal(t, OffsetColorHex, got.Offset.Color)
		assert.Equal(t, RemainingColorHex, got.Remaining.Color)
	})

	t.Run("net zero has no remaining slice", func(t *testing.T) {
		res, err := ComputeOffset(OffsetInput{PanelCount: 10, EnergyProduced: 1, EnergyUnit: EnergyGWh, CurrentEmissions: 1})
		require.NoError(t, err)

		got := ChartFor(res)
		assert.Zero(t, got.Remaining.Value)
		assert.InDelta(t, 100.0, got.Offset.Percent, tolerance)
		assert.Zero(t, got.Remaining.Percent)
	})

	t.Run("empty result has zero percents", func(t *testing.T) {
		got := ChartFor(OffsetResult{})
		assert.Zero(t, got.Total())
		assert.Zero(t, got.Offset.Percent)
		assert.Zero(t, got.Remaining.Percent)
	})

	t.Run("negative values are clamped", func(t *testing.T) {
		got := ChartFor(OffsetResult{CarbonOffset: -5, RemainingEmissions: 10})
		assert.Zero(t, got.Offset.Value)
		assert.InDelta(t, 100.0, got.Remaining.Percent, tolerance)
	})

	t.Run("slices in drawing order", func(t *testing.T) {
		got := ChartFor(OffsetResult{CarbonOffset: 1, RemainingEmissions: 3}).Slices()
		require.Len(t, got, 2)
		assert.Equal(t, OffsetLabel, got[0].Label)
		assert.Equal(t, RemainingLabel, got[1].Label)
	})
}
