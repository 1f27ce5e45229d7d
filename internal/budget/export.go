package budget

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"travelagg/internal/catalog"
)

// ExportData is what goes on an itinerary PDF. NumPersons is optional and only
// printed when known.
type ExportData struct {
	Combination PackageCombination
	NumPersons  int
	GeneratedAt time.Time
}

// core PDF fonts are cp1252; rupee sign and arrows are spelled out
var pdfText = strings.NewReplacer("₹", "Rs. ", "→", "->")

// validateCombination checks a client-supplied combination before export.
func validateCombination(c PackageCombination) error {
	if len(c.Packages) == 0 {
		return invalidRequest("combination has no packages")
	}
	days := 0
	for _, p := range c.Packages {
		days += p.DurationDays
	}
	if days != c.TotalDays {
		return invalidRequest("total_days %d does not match packages (%d days)", c.TotalDays, days)
	}
	if c.TotalCost < 0 {
		return invalidRequest("total_cost must not be negative")
	}
	return nil
}

// GenerateItineraryPDF renders a combination as an A4 PDF.
func GenerateItineraryPDF(data ExportData) ([]byte, error) {
	combo := data.Combination
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfText.Replace(s)) }

	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("Budget travel itinerary", true)
	pdf.AddPage()

	// header bar
	pdf.SetFillColor(16, 64, 96)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, "Budget Travel Itinerary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, text(combo.ItinerarySummary), "", 1, "L", false, 0, "")

	pdf.SetY(36)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(16, 64, 96)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+text(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, text(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, text(value), "", 1, "L", false, 0, "")
	}

	sectionHeader("Trip Overview")
	row("Generated", data.GeneratedAt.Format("02 Jan 2006, 15:04"))
	row("Total days", daysLabel(combo.TotalDays))
	if data.NumPersons > 0 {
		row("Travellers", fmt.Sprintf("%d", data.NumPersons))
	}
	row("Packages", fmt.Sprintf("%d", len(combo.Packages)))
	pdf.Ln(4)

	sectionHeader("Packages")
	for i, p := range combo.Packages {
		row(fmt.Sprintf("%d. %s", i+1, p.Destination), p.Title)
		price := p.EffectivePrice().String() + " per person"
		if p.SavingsPerPerson() > 0 {
			price += fmt.Sprintf(" (was %s)", p.OriginalPriceOrCost())
		}
		row("", fmt.Sprintf("%s, %s", daysLabel(p.DurationDays), price))
	}
	pdf.Ln(4)

	if len(combo.TransportSegments) > 0 {
		sectionHeader("Transport")
		for _, s := range combo.TransportSegments {
			row(fmt.Sprintf("%s → %s", s.From, s.To), fmt.Sprintf("%s, %.1f km, %s", modeLabel(s.Type), s.DistanceKm, s.Cost))
		}
		pdf.Ln(4)
	}

	sectionHeader("Cost Summary")
	if combo.Savings > 0 {
		row("Sponsored savings", combo.Savings.String())
	}
	pdf.SetFillColor(230, 240, 248)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, text(combo.TotalCost.String()), "", 1, "L", true, 0, "")

	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Not a booking confirmation. Prices are subject to change.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func modeLabel(m catalog.TransportMode) string {
	if m == "" {
		return string(catalog.ModeNone)
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}
