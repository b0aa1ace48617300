package services

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

const (
	pdfHeaderColor = "#6366F1"
	pdfTextColor   = "#1F2937"
	pdfMutedColor  = "#6B7280"
	pdfRowColor    = "#F9FAFB"
)

// PDF renders a one-document report: header, total, category breakdown,
// insights and the itemised list.
func (s *exportService) PDF(ctx context.Context, uid string) (dto.ExportFile, error) {
	log := logger.FromContext(ctx)

	expenses, err := s.expenses.List(ctx, uid)
	if err != nil {
		return dto.ExportFile{}, err
	}
	currency := s.currency(ctx, uid)
	summary := Summarize(expenses)
	insights := s.insights.GenerateInsights(ctx, summary)

	data, err := renderPDF(expenses, summary, insights, currency, time.Now().UTC())
	if err != nil {
		log.Error("pdf render failed", "error", err)
		return dto.ExportFile{}, err
	}

	log.Info("pdf export generated", "rows", len(expenses), "currency", currency)
	return dto.ExportFile{
		Name:        pdfFileName,
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func renderPDF(expenses []models.Expense, summary dto.PeriodSummary, insights string, currency taxonomy.Currency, generated time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(v float64) string {
		return tr(currency.PDFPrefix() + formatAmount(v))
	}

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.AddPage()

	// Header band
	setFill(pdf, pdfHeaderColor)
	pdf.Rect(0, 0, pageW, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(15, 12)
	pdf.CellFormat(contentW, 10, "Expense Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 8, "Generated on: "+generated.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.SetY(50)

	// Summary
	sectionTitle(pdf, contentW, "Summary")
	setText(pdf, pdfHeaderColor)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Total Expenses", "", 1, "L", false, 0, "")
	setText(pdf, pdfTextColor)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, money(summary.TotalAmount), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Category breakdown
	sectionTitle(pdf, contentW, "Category Breakdown")
	for _, ct := range summary.CategoryTotals {
		y := pdf.GetY()
		setFill(pdf, ct.Category.Color())
		pdf.Rect(15, y+1, 2.5, 5, "F")
		setText(pdf, pdfTextColor)
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetX(20)
		pdf.CellFormat(contentW/2, 7, tr(string(ct.Category)), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentW/2-5, 7, money(ct.Amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Insights
	sectionTitle(pdf, contentW, "AI Insights")
	setText(pdf, "#374151")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(contentW, 5, tr(strings.ReplaceAll(insights, "**", "")), "", "L", false)
	pdf.Ln(6)

	// Itemised table
	sectionTitle(pdf, contentW, "Detailed Expenses")
	cols := []float64{30, 35, contentW - 100, 35}
	setFill(pdf, pdfHeaderColor)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range exportHeader {
		align := "L"
		if i == len(exportHeader)-1 {
			align = "R"
		}
		pdf.CellFormat(cols[i], 8, h, "", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	for i, e := range expenses {
		fill := i%2 == 0
		setFill(pdf, pdfRowColor)
		setText(pdf, "#374151")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(cols[0], 8, e.Date.UTC().Format(dayLayout), "", 0, "L", fill, 0, "")
		setText(pdf, e.Category.Color())
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(cols[1], 8, tr(string(e.Category)), "", 0, "L", fill, 0, "")
		setText(pdf, pdfMutedColor)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(cols[2], 8, tr(truncate(e.Description, descriptionLimit)), "", 0, "L", fill, 0, "")
		setText(pdf, pdfTextColor)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(cols[3], 8, money(e.Amount), "", 1, "R", fill, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *fpdf.Fpdf, width float64, title string) {
	setText(pdf, pdfTextColor)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(width, 9, title, "", 1, "L", false, 0, "")
	y := pdf.GetY()
	pdf.SetDrawColor(229, 231, 235)
	pdf.Line(15, y, 15+width, y)
	pdf.Ln(3)
}

func setFill(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetFillColor(r, g, b)
}

func setText(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetTextColor(r, g, b)
}

// hexRGB parses #RRGGBB. Malformed input renders black.
func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
