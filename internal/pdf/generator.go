package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/ecosweep/internal/billing"
	"github.com/nurpe/ecosweep/internal/model"
)

type Generator struct {
	fontName string
	compress bool
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica", compress: true}
}

// Generate renders a receipt. The core font is cp1252 encoded, so every
// string goes through tr; runes outside cp1252 such as emoji are dropped.
func (g *Generator) Generate(receipt model.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(receipt.Title, true)
	pdf.SetAuthor("EcoSweep", false)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "EcoSweep", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "B", 13)
	pdf.CellFormat(0, 8, tr(receipt.Title), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Reference: %s", safeValue(receipt.Reference))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s", formatDate(receipt.IssuedAt)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Customer: %s", safeValue(receipt.Customer))), "", 1, "L", false, 0, "")
	for _, detail := range receipt.Details {
		pdf.MultiCell(0, 6, tr(detail), "", "L", false)
	}
	pdf.Ln(4)

	colWidths := []float64{130, 50}
	drawTableRow(pdf, g.fontName, []string{"Description", "Amount"}, colWidths, true)
	for _, line := range receipt.Lines {
		drawTableRow(pdf, g.fontName, []string{tr(line.Description), billing.FormatUSD(line.Amount)}, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subtotal: %s", billing.FormatUSD(receipt.Subtotal)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tax (%.0f%%): %s", receipt.TaxRate*100, billing.FormatUSD(receipt.Tax)), "", 1, "R", false, 0, "")
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: %s %s", billing.FormatUSD(receipt.Total), receipt.Currency), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}
