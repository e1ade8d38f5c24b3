package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/netzero/internal/solar"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Results"

// Excel built-in number formats.
const (
	numFmtInteger = 3 // #,##0
	numFmtDecimal = 4 // #,##0.00
)

type xlsxRow struct {
	label string
	value any
	unit  string
	fmtID int
}

// WriteXLSX renders doc as a workbook with one "Results" sheet holding the
// inputs, the results as numeric cells and a native pie chart over the
// offset and remaining cells.
func WriteXLSX(w io.Writer, doc Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	styles := map[int]int{}
	for _, id := range []int{numFmtInteger, numFmtDecimal} {
		s, serr := f.NewStyle(&excelize.Style{NumFmt: id})
		if serr != nil {
			return serr
		}
		styles[id] = s
	}

	res := doc.Result
	row := 1
	set := func(col int, v any) error {
		cell, cerr := excelize.CoordinatesToCellName(col, row)
		if cerr != nil {
			return cerr
		}
		return f.SetCellValue(SheetName, cell, v)
	}
	style := func(col, id int) error {
		cell, cerr := excelize.CoordinatesToCellName(col, row)
		if cerr != nil {
			return cerr
		}
		return f.SetCellStyle(SheetName, cell, cell, id)
	}
	writeRows := func(heading string, rows []xlsxRow) error {
		if werr := set(1, heading); werr != nil {
			return werr
		}
		if werr := style(1, bold); werr != nil {
			return werr
		}
		row++
		for _, r := range rows {
			if werr := set(1, r.label); werr != nil {
				return werr
			}
			if werr := set(2, r.value); werr != nil {
				return werr
			}
			if werr := set(3, r.unit); werr != nil {
				return werr
			}
			if r.fmtID != 0 {
				if werr := style(2, styles[r.fmtID]); werr != nil {
					return werr
				}
			}
			row++
		}
		row++
		return nil
	}

	if err = set(1, doc.Title); err != nil {
		return err
	}
	if err = style(1, title); err != nil {
		return err
	}
	row++
	meta := []xlsxRow{
		{label: "Document ID", value: doc.ID},
		{label: "Generated", value: doc.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if doc.Author != "" {
		meta = append(meta, xlsxRow{label: "Author", value: doc.Author})
	}
	if err = writeRows("Report", meta); err != nil {
		return err
	}

	inputs := []xlsxRow{
		{label: "Current number of solar panels", value: res.PanelCount, fmtID: numFmtInteger},
		{label: "Total energy produced", value: res.EnergyProducedKWh, unit: solar.EnergyKWh.String(), fmtID: numFmtDecimal},
		{label: "Current total carbon emissions", value: res.CurrentEmissionsKg, unit: solar.EmissionsKg.Label(), fmtID: numFmtDecimal},
		{label: "Grid emission factor", value: res.GridEmissionFactor, unit: "kg CO₂/kWh"},
	}
	if err = writeRows("Inputs", inputs); err != nil {
		return err
	}

	status := "Net-zero not reached"
	if res.NetZeroReached {
		status = solar.NetZeroReachedTitle
	}
	results := []xlsxRow{
		{label: fmt.Sprintf(solar.LabelCarbonOffsetFmt, solar.FormatNumber(int64(res.PanelCount))), value: res.CarbonOffset, unit: solar.EmissionsKg.Label(), fmtID: numFmtDecimal},
		{label: solar.LabelRemainingEmissions, value: res.RemainingEmissions, unit: solar.EmissionsKg.Label(), fmtID: numFmtDecimal},
		{label: solar.LabelAdditionalEnergy, value: res.AdditionalEnergyNeeded, unit: solar.EnergyKWh.String(), fmtID: numFmtDecimal},
		{label: solar.LabelEnergyPerPanel, value: res.EnergyPerPanel, unit: solar.EnergyKWh.String(), fmtID: numFmtDecimal},
		{label: solar.LabelAdditionalPanels, value: res.AdditionalPanelsNeeded, fmtID: numFmtDecimal},
		{label: solar.LabelStatus, value: status},
	}
	if err = writeRows("Results", results); err != nil {
		return err
	}

	chartHeader := row
	chart := []xlsxRow{
		{label: doc.Chart.Offset.Label, value: doc.Chart.Offset.Value, fmtID: numFmtDecimal},
		{label: doc.Chart.Remaining.Label, value: doc.Chart.Remaining.Value, fmtID: numFmtDecimal},
	}
	if err = writeRows("Chart data", chart); err != nil {
		return err
	}
	if err = addPie(f, doc.Chart.Title, chartHeader+1, chartHeader+2); err != nil {
		return err
	}

	if err = f.SetColWidth(SheetName, "A", "A", 55); err != nil {
		return err
	}
	if err = f.SetColWidth(SheetName, "B", "C", 20); err != nil {
		return err
	}
	if err = f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// addPie anchors a pie chart over rows first..last of columns A (labels) and
// B (values) to the right of the tables.
func addPie(f *excelize.File, title string, first, last int) error {
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", SheetName, col, first, col, last)
	}
	err := f.AddChart(SheetName, "E2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       title,
			Categories: ref("A"),
			Values:     ref("B"),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: true,
			ShowCatName: false,
			ShowVal:     false,
		},
	})
	if err != nil {
		return fmt.Errorf("adding chart: %w", err)
	}
	return nil
}
