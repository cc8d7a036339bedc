package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"
)

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.ReportSummary()
	if err != nil {
		slog.Error("report summary", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleWeeklyRiskTrend(w http.ResponseWriter, r *http.Request) {
	points, err := s.store.RiskTrend(7, time.Now())
	if err != nil {
		slog.Error("weekly risk trend", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	board, err := s.store.RiskBoard()
	if err != nil {
		slog.Error("csv report", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write([]string{"ID", "Name", "Department", "Risk", "Completion %"})
	for _, e := range board {
		_ = writer.Write([]string{
			fmt.Sprintf("%d", e.UserID),
			e.Name,
			e.Department,
			e.Risk,
			fmt.Sprintf("%.1f", e.Score),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Error("csv report", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="onboarding-report.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.ReportSummary()
	if err != nil {
		slog.Error("pdf report", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	board, err := s.store.RiskBoard()
	if err != nil {
		slog.Error("pdf report", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Onboarding Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Employees: %d    Average completion: %.1f%%",
		summary.TotalEmployees, summary.AvgCompletion))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Good: %d    Neutral: %d    Warning: %d    Critical: %d",
		summary.RiskSummary.Good, summary.RiskSummary.Neutral,
		summary.RiskSummary.Warning, summary.RiskSummary.Critical))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	widths := []float64{15, 60, 45, 30, 30}
	headers := []string{"ID", "Name", "Department", "Risk", "Completion"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range board {
		cells := []string{
			fmt.Sprintf("%d", e.UserID),
			e.Name,
			e.Department,
			e.Risk,
			fmt.Sprintf("%.1f%%", e.Score),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		slog.Error("pdf report", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="onboarding-report.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.DashboardSummary()
	if err != nil {
		slog.Error("dashboard summary", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRiskTrend(w http.ResponseWriter, r *http.Request) {
	points, err := s.store.RiskTrend(14, time.Now())
	if err != nil {
		slog.Error("risk trend", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleRiskHeatmap(w http.ResponseWriter, r *http.Request) {
	cells, err := s.store.Heatmap()
	if err != nil {
		slog.Error("risk heatmap", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (s *Server) handleTopImproved(w http.ResponseWriter, r *http.Request) {
	improved, err := s.store.TopImproved(5)
	if err != nil {
		slog.Error("top improved", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, improved)
}

func (s *Server) handleCriticalFocus(w http.ResponseWriter, r *http.Request) {
	focus, err := s.store.CriticalFocusList()
	if err != nil {
		slog.Error("critical focus", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, focus)
}
