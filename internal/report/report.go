// Package report exports offset calculations as PDF and XLSX documents, each
// with the "Carbon Offset vs. Remaining Emissions" pie chart.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rshade/netzero/internal/solar"
)

// Format is a report file format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for formats other than pdf and xlsx.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat reads a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (want pdf or xlsx)", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Meta is the caller-supplied report metadata.
type Meta struct {
	Title  string
	Author string
}

// Document is everything a report shows.
type Document struct {
	ID          string
	GeneratedAt time.Time
	Title       string
	Author      string
	Precision   int

	Input  solar.OffsetInput
	Result solar.OffsetResult
	Chart  solar.ChartData
}

// NewDocument stamps a calculation with a fresh ID and the current time.
func NewDocument(meta Meta, in solar.OffsetInput, res solar.OffsetResult, precision int) Document {
	title := meta.Title
	if title == "" {
		title = "Solar Net-Zero Report"
	}
	return Document{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Title:       title,
		Author:      meta.Author,
		Precision:   precision,
		Input:       in,
		Result:      res,
		Chart:       solar.ChartFor(res),
	}
}

// FileName suggests a download name, e.g. "netzero-report-1a2b3c4d.pdf".
func (d Document) FileName(f Format) string {
	const shortID = 8
	id := d.ID
	if len(id) > shortID {
		id = id[:shortID]
	}
	return fmt.Sprintf("netzero-report-%s.%s", id, f)
}

// Write renders doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, doc)
	case FormatXLSX:
		return WriteXLSX(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// InputLines describes the calculation inputs in their entry units.
func InputLines(in solar.OffsetInput, precision int) []solar.ResultLine {
	energyUnit := in.EnergyUnit
	if energyUnit == "" {
		energyUnit = solar.EnergyKWh
	}
	emissionsUnit := in.EmissionsUnit
	if emissionsUnit == "" {
		emissionsUnit = solar.EmissionsKg
	}
	factor := in.GridEmissionFactor
	if factor == 0 {
		factor = solar.DefaultGridEmissionFactor
	}
	return []solar.ResultLine{
		{Label: "Current number of solar panels", Value: solar.FormatNumber(int64(in.PanelCount))},
		{Label: "Total energy produced", Value: solar.FormatFloat(in.EnergyProduced, precision) + " " + energyUnit.String()},
		{Label: "Current total carbon emissions", Value: solar.FormatFloat(in.CurrentEmissions, precision) + " " + emissionsUnit.Label()},
		{Label: "Grid emission factor", Value: strconv.FormatFloat(factor, 'f', -1, 64) + " kg CO₂/kWh"},
	}
}
