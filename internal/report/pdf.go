package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/rshade/netzero/internal/solar"
)

// Page layout in millimetres.
const (
	pageMargin   = 15.0
	lineHeight   = 7.0
	labelWidth   = 115.0
	valueWidth   = 65.0
	pieRadius    = 38.0
	pieExplode   = 0.1
	pieStartDeg  = 140.0
	pieArcStep   = 2.0
	legendSwatch = 5.0
)

// WritePDF renders doc as an A4 PDF: metadata, inputs, results and the pie.
func WritePDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("netzero", false)
	pdf.SetKeywords(doc.ID, false)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		// Core fonts are cp1252, which has no subscript two.
		return tr(strings.ReplaceAll(s, "₂", "2"))
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, text(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	if doc.Author != "" {
		pdf.CellFormat(0, 5, text("Author: "+doc.Author), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Document ID: "+doc.ID, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	section := func(title string, lines []solar.ResultLine) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, text(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range lines {
			pdf.CellFormat(labelWidth, lineHeight, text(l.Label), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(valueWidth, lineHeight, text(l.Value), "", 1, "R", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.Ln(4)
	}

	section("Inputs", InputLines(doc.Input, doc.Precision))
	if doc.Result.NetZeroReached {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 128, 0)
		pdf.CellFormat(0, 10, solar.NetZeroReachedTitle, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	section("Results", solar.OffsetLines(doc.Result, doc.Precision))

	if eq := solar.EquivalencyText(solar.Equivalencies(doc.Result.CarbonOffset)); eq != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, text(eq), "", "L", false)
		pdf.Ln(4)
	}

	drawPie(pdf, doc.Chart, text)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

// drawPie draws the chart below the current position: title, exploded pie
// starting at 140 degrees counterclockwise, and a legend with percentages.
func drawPie(pdf *gofpdf.Fpdf, data solar.ChartData, text func(string) string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, text(data.Title), "", 1, "C", false, 0, "")

	pageW, _ := pdf.GetPageSize()
	cx := pageW / 2
	cy := pdf.GetY() + pieRadius + pieRadius*pieExplode + 2

	start := pieStartDeg
	for i, s := range data.Slices() {
		sweep := s.Percent / 100 * 360
		if sweep <= 0 {
			continue
		}
		explode := 0.0
		if i == 0 && sweep < 360 {
			explode = pieRadius * pieExplode
		}
		r, g, b := hexColor(s.Color)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(255, 255, 255)
		pdf.Polygon(slicePoints(cx, cy, pieRadius, explode, start, sweep), "FD")
		start += sweep
	}

	legendY := cy + pieRadius + pieRadius*pieExplode + 6
	pdf.SetFont("Helvetica", "", 10)
	for i, s := range data.Slices() {
		y := legendY + float64(i)*lineHeight
		r, g, b := hexColor(s.Color)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(cx-40, y+1, legendSwatch, legendSwatch, "F")
		pdf.SetXY(cx-40+legendSwatch+2, y)
		label := fmt.Sprintf("%s %.1f%% (%s)", s.Label, s.Percent, solar.FormatKg(s.Value))
		pdf.CellFormat(0, lineHeight, text(label), "", 1, "L", false, 0, "")
	}
}

// slicePoints returns the polygon of a pie slice: the (possibly exploded)
// centre followed by points along the arc. Angles are degrees counterclockwise
// from three o'clock; PDF y grows downwards.
func slicePoints(cx, cy, radius, explode, startDeg, sweepDeg float64) []gofpdf.PointType {
	mid := (startDeg + sweepDeg/2) * math.Pi / 180
	ox := cx + explode*math.Cos(mid)
	oy := cy - explode*math.Sin(mid)

	steps := int(math.Ceil(sweepDeg / pieArcStep))
	if steps < 1 {
		steps = 1
	}
	points := make([]gofpdf.PointType, 0, steps+2)
	if sweepDeg < 360 {
		points = append(points, gofpdf.PointType{X: ox, Y: oy})
	}
	for i := 0; i <= steps; i++ {
		a := (startDeg + sweepDeg*float64(i)/float64(steps)) * math.Pi / 180
		points = append(points, gofpdf.PointType{
			X: ox + radius*math.Cos(a),
			Y: oy - radius*math.Sin(a),
		})
	}
	return points
}

// hexColor parses "#rrggbb"; anything else is grey.
func hexColor(hex string) (int, int, int) {
	const grey = 128
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return grey, grey, grey
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
