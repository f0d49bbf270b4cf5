package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

// PDFExporter exports reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSurvey generates a site-survey PDF of the networks discovered in a
// scan session.
func (e *PDFExporter) ExportSurvey(networks []domain.NetworkDescriptor, sessionID string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, sessionID, len(networks))
	e.addSummary(pdf, networks)
	e.addNetworkTable(pdf, networks)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, sessionID string, count int) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 14, "Hotspot 2.0 Site Survey", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Session: %s", sessionID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Networks discovered: %d", count), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (e *PDFExporter) addSummary(pdf *gofpdf.Fpdf, networks []domain.NetworkDescriptor) {
	interworking := 0
	passpoint := 0
	internet := 0
	for _, nd := range networks {
		if nd.IsInterworking() {
			interworking++
		}
		if _, ok := nd.HSRelease(); ok {
			passpoint++
		}
		if nd.Internet() {
			internet++
		}
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("802.11u Interworking: %d    Passpoint (HS2.0): %d    Internet advertised: %d",
		interworking, passpoint, internet), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addNetworkTable(pdf *gofpdf.Fpdf, networks []domain.NetworkDescriptor) {
	headers := []string{"SSID", "BSSID", "Access Network", "Internet", "Venue", "HS2.0", "Stations", "OIs"}
	widths := []float64{60, 40, 40, 20, 40, 20, 20, 30}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, nd := range networks {
		pdf.SetFillColor(240, 240, 245)

		ssid := "<hidden>"
		if name, ok := nd.SSID(); ok {
			ssid = name
		}

		ant := "-"
		if value, ok := nd.Ant(); ok {
			ant = value.String()
		}

		internet := "no"
		if nd.Internet() {
			internet = "yes"
		}

		venue := "-"
		if group, ok := nd.VenueGroup(); ok {
			venue = group.String()
		}

		release := "-"
		if value, ok := nd.HSRelease(); ok {
			release = value.String()
		}

		row := []string{
			ssid,
			nd.BSSIDString(),
			ant,
			internet,
			venue,
			release,
			fmt.Sprintf("%d", nd.StationCount()),
			fmt.Sprintf("%d", len(nd.RoamingConsortiums())),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}
}
