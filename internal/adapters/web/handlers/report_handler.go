package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lcalzada-xor/hsmap/internal/adapters/reporting"
	"github.com/lcalzada-xor/hsmap/internal/core/services/registry"
)

// ReportHandler serves the PDF site-survey report.
type ReportHandler struct {
	Registry *registry.NetworkRegistry
	Exporter *reporting.PDFExporter
}

// NewReportHandler creates a report handler.
func NewReportHandler(reg *registry.NetworkRegistry, exporter *reporting.PDFExporter) *ReportHandler {
	return &ReportHandler{Registry: reg, Exporter: exporter}
}

// HandleSurveyReport renders the current registry contents as a PDF.
func (h *ReportHandler) HandleSurveyReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Exporter.ExportSurvey(h.Registry.All(), h.Registry.SessionID())
	if err != nil {
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("hsmap-survey-%s.pdf", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(report)
}
