package solar

import "math"

// ChartFor returns the offset/remaining proportions of an offset result.
// Both values are non-negative; a net-zero result has a zero remaining slice.
func ChartFor(res OffsetResult) ChartData {
	offset := math.Max(res.CarbonOffset, 0)
	remaining := math.Max(res.RemainingEmissions, 0)

	data := ChartData{
		Title:     ChartTitle,
		Offset:    ChartSlice{Label: OffsetLabel, Value: offset, Color: OffsetColorHex},
		Remaining: ChartSlice{Label: RemainingLabel, Value: remaining, Color: RemainingColorHex},
	}

	if total := offset + remaining; total > 0 {
		data.Offset.Percent = offset / total * percentMultiplier
		data.Remaining.Percent = percentMultiplier - data.Offset.Percent
	}
	return data
}
