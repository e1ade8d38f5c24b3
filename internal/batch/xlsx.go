package batch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/netzero/internal/solar"
)

// Column names of the scenario sheet. Header matching ignores case and
// surrounding space.
const (
	ColName          = "name"
	ColPanels        = "panels"
	ColEnergy        = "energy"
	ColEnergyUnit    = "energy_unit"
	ColEmissions     = "emissions"
	ColEmissionsUnit = "emissions_unit"
	ColGridFactor    = "grid_factor"
)

// ResultsSheet is the sheet WriteXLSX fills.
const ResultsSheet = "Results"

// Workbook errors.
var (
	ErrNoSheet       = errors.New("workbook has no sheets")
	ErrMissingHeader = errors.New("missing required column")
)

var requiredColumns = []string{ColPanels, ColEnergy, ColEmissions}

// ReadXLSX reads scenarios from the first sheet of a workbook. The first
// row is the header; blank rows are skipped. Cells that cannot be parsed set
// the scenario's ParseErr instead of failing the whole read.
func ReadXLSX(r io.Reader) ([]Scenario, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingHeader, sheet)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingHeader, c)
		}
	}

	scenarios := make([]Scenario, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if isBlank(row) {
			continue
		}
		rowNum := i + 2
		sc := Scenario{Row: rowNum, Name: cell(ColName)}
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("row %d", rowNum)
		}
		sc.Input, sc.ParseErr = parseRow(cell)
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func parseRow(cell func(string) string) (solar.OffsetInput, error) {
	var in solar.OffsetInput
	var err error

	if in.PanelCount, err = solar.ParsePanelCount(cell(ColPanels)); err != nil {
		return in, fmt.Errorf("column %s: %w", ColPanels, err)
	}
	if in.EnergyProduced, err = solar.ParseNumber(cell(ColEnergy)); err != nil {
		return in, fmt.Errorf("column %s: %w", ColEnergy, err)
	}
	if in.CurrentEmissions, err = solar.ParseNumber(cell(ColEmissions)); err != nil {
		return in, fmt.Errorf("column %s: %w", ColEmissions, err)
	}
	in.EnergyUnit = solar.EnergyKWh
	if u := cell(ColEnergyUnit); u != "" {
		if in.EnergyUnit, err = solar.ParseEnergyUnit(u); err != nil {
			return in, fmt.Errorf("column %s: %w", ColEnergyUnit, err)
		}
	}
	in.EmissionsUnit = solar.EmissionsKg
	if u := cell(ColEmissionsUnit); u != "" {
		if in.EmissionsUnit, err = solar.ParseEmissionsUnit(u); err != nil {
			return in, fmt.Errorf("column %s: %w", ColEmissionsUnit, err)
		}
	}
	if g := cell(ColGridFactor); g != "" {
		if in.GridEmissionFactor, err = solar.ParseNumber(g); err != nil {
			return in, fmt.Errorf("column %s: %w", ColGridFactor, err)
		}
	}
	return in, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ResultHeaders are the columns of the results sheet and table.
var ResultHeaders = []string{
	"Row", "Name", "Carbon Offset (kg CO₂)", "Remaining (kg CO₂)",
	"Additional Energy (kWh)", "Energy/Panel (kWh)", "Additional Panels", "Status",
}

// WriteXLSX writes one row per outcome to a "Results" sheet.
func WriteXLSX(w io.Writer, outcomes []Outcome) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err = f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return err
	}

	header := make([]any, len(ResultHeaders))
	for i, h := range ResultHeaders {
		header[i] = h
	}
	if err = f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err = f.SetRowStyle(ResultsSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, o := range outcomes {
		cell, cerr := excelize.CoordinatesToCellName(1, i+2)
		if cerr != nil {
			return cerr
		}
		row := outcomeRow(o)
		if err = f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return err
		}
	}
	if err = f.SetColWidth(ResultsSheet, "B", "H", 22); err != nil {
		return err
	}
	if err = f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func outcomeRow(o Outcome) []any {
	row := []any{o.Scenario.Row, o.Scenario.Name}
	if o.Result == nil {
		return append(row, "", "", "", "", "", "Error: "+o.ErrorMessage())
	}
	r := o.Result
	return append(row,
		r.CarbonOffset, r.RemainingEmissions, r.AdditionalEnergyNeeded,
		r.EnergyPerPanel, r.AdditionalPanelsNeeded, Status(o))
}

// Status is the one-word state of an outcome.
func Status(o Outcome) string {
	switch {
	case o.Err != nil:
		return "error"
	case o.Result != nil && o.Result.NetZeroReached:
		return "net-zero"
	default:
		return "ok"
	}
}
