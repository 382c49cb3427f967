package infra

// pdf.go renders the batch traceability sheet with go-pdf/fpdf: batch
// header, manufacturer, current inventory position, and the full quality
// test history in creation order.

import (
	"fmt"
	"io"

	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/go-pdf/fpdf"
)

const pdfDateFmt = "2006-01-02"

// TraceabilitySheet is everything printed for one batch. Line and
// Manufacturer may be nil (no stock registered / manufacturer removed).
type TraceabilitySheet struct {
	Batch        *model.Batch
	Manufacturer *model.Manufacturer
	Line         *model.InventoryLine
	Reports      []model.QualityReport
}

// WriteTraceabilityPDF writes an A4 traceability sheet to w.
func WriteTraceabilityPDF(w io.Writer, sheet TraceabilitySheet) error {
	if sheet.Batch == nil {
		return fmt.Errorf("pdf: nil batch")
	}
	b := sheet.Batch

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Batch Traceability", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Batch %s  -  %s", b.BatchNumber, b.ID), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	row := func(label, value string) {
		pdf.CellFormat(contentW*0.35, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.65, 6, value, "", 1, "L", false, 0, "")
	}

	section("Batch")
	row("Product", fmt.Sprintf("%s (%s)", b.ProductName, b.ProductType))
	row("Production date", b.ProductionDate.Format(pdfDateFmt))
	row("Expiry date", b.ExpiryDate.Format(pdfDateFmt))
	row("Quantity produced", fmt.Sprintf("%d", b.Quantity))
	row("Status", string(b.Status))
	row("Quality status", string(b.QualityStatus))

	section("Manufacturer")
	if m := sheet.Manufacturer; m != nil {
		row("Name", m.Name)
		row("License", m.LicenseNumber)
		row("Contact", fmt.Sprintf("%s / %s", m.ContactEmail, m.ContactPhone))
		row("Address", m.Address)
	} else {
		row("Name", b.ManufacturerName)
	}

	section("Inventory")
	if l := sheet.Line; l != nil {
		row("Location", l.Location)
		row("Stock", fmt.Sprintf("%d of %d", l.CurrentStock, l.InitialStock))
		row("Last updated", l.LastUpdated.Format("2006-01-02 15:04"))
	} else {
		row("Location", "not registered")
	}

	section(fmt.Sprintf("Quality reports (%d)", len(sheet.Reports)))
	if len(sheet.Reports) > 0 {
		cols := []float64{contentW * 0.18, contentW * 0.22, contentW * 0.14, contentW * 0.18, contentW * 0.28}
		pdf.SetFont("Helvetica", "B", 8)
		for i, h := range []string{"Date", "Test", "Result", "Tested by", "Notes"} {
			pdf.CellFormat(cols[i], 6, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		for _, r := range sheet.Reports {
			notes := r.Notes
			if len(notes) > 40 {
				notes = notes[:39] + "..."
			}
			pdf.CellFormat(cols[0], 5, r.TestDate.Format(pdfDateFmt), "", 0, "L", false, 0, "")
			pdf.CellFormat(cols[1], 5, r.TestType, "", 0, "L", false, 0, "")
			pdf.CellFormat(cols[2], 5, string(r.Result), "", 0, "L", false, 0, "")
			pdf.CellFormat(cols[3], 5, r.TestedBy, "", 0, "L", false, 0, "")
			pdf.CellFormat(cols[4], 5, notes, "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}
