package batch_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/netzero/internal/batch"
	"github.com/rshade/netzero/internal/solar"
)

func workbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

var header = []any{"Name", "Panels", "Energy", "Energy_Unit", "Emissions", "Emissions_Unit", "Grid_Factor"}

func TestReadXLSX(t *testing.T) {
	r := workbook(t, [][]any{
		header,
		{"site a", 3805, 50000, "kWh", 500000, "kg", ""},
		{"", 10, 1, "MWh", 0.1, "tons", 0.5},
		{},
		{"broken", "many", 1, "", 1, "", ""},
		{"bad unit", 1, 1, "joules", 1, "", ""},
	})

	scenarios, err := batch.ReadXLSX(r)
	require.NoError(t, err)
	require.Len(t, scenarios, 4)

	a := scenarios[0]
	assert.Equal(t, 2, a.Row)
	assert.Equal(t, "site a", a.Name)
	require.NoError(t, a.ParseErr)
	assert.Equal(t, 3805, a.Input.PanelCount)
	assert.Equal(t, solar.EnergyKWh, a.Input.EnergyUnit)
	assert.Zero(t, a.Input.GridEmissionFactor)

	b := scenarios[1]
	assert.Equal(t, "row 3", b.Name)
	assert.Equal(t, solar.EnergyMWh, b.Input.EnergyUnit)
	assert.Equal(t, solar.EmissionsTons, b.Input.EmissionsUnit)
	assert.InDelta(t, 0.5, b.Input.GridEmissionFactor, 1e-12)

	assert.Equal(t, 5, scenarios[2].Row, "blank row skipped but numbering kept")
	require.ErrorIs(t, scenarios[2].ParseErr, solar.ErrInvalidInput)
	require.ErrorIs(t, scenarios[3].ParseErr, solar.ErrInvalidUnit)
}

func TestReadXLSXMissingColumn(t *testing.T) {
	_, err := batch.ReadXLSX(workbook(t, [][]any{{"name", "panels", "energy"}}))
	require.ErrorIs(t, err, batch.ErrMissingHeader)
	assert.Contains(t, err.Error(), "emissions")
}

func TestReadXLSXNotAWorkbook(t *testing.T) {
	_, err := batch.ReadXLSX(bytes.NewReader([]byte("name,panels\n")))
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	scenarios := []batch.Scenario{
		{Row: 2, Name: "a", Input: solar.OffsetInput{PanelCount: 3805, EnergyProduced: 50000, CurrentEmissions: 500000}},
		{Row: 3, Name: "zero panels", Input: solar.OffsetInput{PanelCount: 0, EnergyProduced: 1, CurrentEmissions: 1}},
		{Row: 4, Name: "net zero", Input: solar.OffsetInput{PanelCount: 1, EnergyProduced: 1000, CurrentEmissions: 1}},
		{Row: 5, Name: "unparsed", ParseErr: &solar.ParseError{Field: "panel_count", Text: "x"}},
		{Row: 6, Name: "custom factor", Input: solar.OffsetInput{PanelCount: 1, EnergyProduced: 100, CurrentEmissions: 1000}},
	}

	outcomes, err := batch.Evaluate(context.Background(), scenarios, batch.Options{ChunkSize: 2, Concurrency: 3, GridFactor: 0.5})
	require.NoError(t, err)
	require.Len(t, outcomes, len(scenarios))

	for i, o := range outcomes {
		assert.Equal(t, scenarios[i].Row, o.Scenario.Row, "order preserved")
	}

	require.NotNil(t, outcomes[0].Result)
	assert.InDelta(t, 25000, outcomes[0].Result.CarbonOffset, 1e-9, "blank factor uses the batch default")
	require.ErrorIs(t, outcomes[1].Err, solar.ErrInvalidInput)
	assert.Nil(t, outcomes[1].Result)
	assert.True(t, outcomes[2].Result.NetZeroReached)
	require.ErrorIs(t, outcomes[3].Err, solar.ErrInvalidInput)

	assert.Equal(t, batch.Summary{Total: 5, Succeeded: 3, Failed: 2, NetZero: 1}, batch.Summarize(outcomes))
	assert.Equal(t, "error", batch.Status(outcomes[1]))
	assert.Equal(t, "net-zero", batch.Status(outcomes[2]))
	assert.Equal(t, "ok", batch.Status(outcomes[0]))
}

func TestEvaluateEmptyAndInvalid(t *testing.T) {
	outcomes, err := batch.Evaluate(context.Background(), nil, batch.Options{})
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	_, err = batch.Evaluate(context.Background(), nil, batch.Options{ChunkSize: -1})
	require.ErrorIs(t, err, batch.ErrInvalidChunkSize)
}

func TestEvaluateNoEnergyMessage(t *testing.T) {
	outcomes, err := batch.Evaluate(context.Background(), []batch.Scenario{
		{Row: 2, Input: solar.OffsetInput{PanelCount: 1, EnergyProduced: 0, CurrentEmissions: 1}},
	}, batch.Options{})
	require.NoError(t, err)
	assert.Equal(t, solar.MsgNoEnergy, outcomes[0].ErrorMessage())
}

func TestWriteXLSX(t *testing.T) {
	outcomes, err := batch.Evaluate(context.Background(), []batch.Scenario{
		{Row: 2, Name: "a", Input: solar.OffsetInput{PanelCount: 3805, EnergyProduced: 50000, CurrentEmissions: 500000}},
		{Row: 3, Name: "b", Input: solar.OffsetInput{PanelCount: 0, EnergyProduced: 1, CurrentEmissions: 1}},
	}, batch.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, batch.WriteXLSX(&buf, outcomes))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(batch.ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, batch.ResultHeaders, rows[0])
	assert.Equal(t, "a", rows[1][1])
	assert.Equal(t, "20850", rows[1][2])
	assert.Equal(t, "ok", rows[1][7])
	assert.Contains(t, rows[2][7], "Error:")
}
