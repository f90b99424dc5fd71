package invoice

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"
)

// DownloadPDF renders one invoice as a PDF attachment.
func (h *Handler) DownloadPDF(c *fiber.Ctx) error {
	inv, err := h.Store.Get(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(235, 235, 235)
	pdf.Text(25, 140, "MONEYTRACK")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Invoice "+inv.Code)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Issued: "+inv.Date+"   Due: "+inv.DueDate)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Bill to: "+inv.ClientName+" <"+inv.ClientEmail+">")
	pdf.Ln(5)
	pdf.Cell(0, 6, "Status: "+strings.ToUpper(inv.Status))
	pdf.Ln(10)

	if inv.Description != "" {
		pdf.SetTextColor(30, 30, 30)
		pdf.MultiCell(0, 6, inv.Description, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 10)

	colW := []float64{92, 26, 30, 34}
	pdf.CellFormat(colW[0], 8, "ITEM", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW[1], 8, "QTY", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colW[2], 8, "RATE", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[3], 8, "AMOUNT", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
	for _, it := range inv.Items {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		pdf.CellFormat(colW[0], 8, trimTo(it.Name, 60), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 8, formatQty(it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, formatMoney(it.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 8, formatMoney(it.Quantity*it.Rate), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colW[0]+colW[1]+colW[2], 10, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 10, formatMoney(TotalAmount(inv.Items)), "1", 1, "R", false, 0, "")

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by MoneyTrack - "+time.Now().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render invoice PDF")
	}

	filename := "invoice-" + strings.TrimPrefix(inv.Code, "#") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatQty(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
