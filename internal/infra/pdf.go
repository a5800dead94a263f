package infra

// pdf.go — order receipt generation using go-pdf/fpdf.
// Produces a compact receipt for each finalized online sale: storefront
// header, invoice number and timestamp, item table, shipping line, bold
// grand total and the tracking number handed to the courier.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// GenerateReceiptPDF writes the receipt for a finalized sale into
// storagePath (created if needed) and returns the file's path.
func GenerateReceiptPDF(sale *model.Sale, order *model.OnlineOrder, companyName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7-ish custom size, close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 130},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	if companyName == "" {
		companyName = "Kazumi"
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Bukti Pembelian Online", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, sale.ID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.Timestamp.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Pelanggan: %s", sale.CustomerName), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produk", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := item.Name
		if item.Size != "" {
			name = fmt.Sprintf("%s %s", name, item.Size)
		}
		lineTotal := item.Price.Mul(decimalFromInt(item.Quantity))
		pdf.CellFormat(col1, 4, truncate(name, 26), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, "Rp "+lineTotal.StringFixed(0), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	if order != nil && !order.ShippingCost.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Ongkos kirim", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "Rp "+order.ShippingCost.StringFixed(0), "", 1, "R", false, 0, "")
	}

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Rp "+sale.Result.GrandTotal.StringFixed(0), "", 1, "R", false, 0, "")

	if order != nil && order.TrackingNumber != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW, 4, fmt.Sprintf("Resi: %s (%s)", order.TrackingNumber, order.Courier), "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(contentW, 4, "Terima kasih telah berbelanja.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
