package infra

// pdf.go: PDF documents built with go-pdf/fpdf.
//   - sale ticket, A7-size thermal receipt style (74mm × 105mm)
//   - income/expense report, A4

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"

	"github.com/go-pdf/fpdf"
)

// GenerateTicketPDF writes the ticket of venta to storagePath/ticket_{numero}.pdf
// (the directory is created if needed) and returns the file path.
func GenerateTicketPDF(venta *model.Venta, negocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := TicketPath(storagePath, venta.NumeroTicket)

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	if err := RenderTicketPDF(f, venta, negocio); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// TicketPath is where GenerateTicketPDF stores the ticket numbered numero.
func TicketPath(storagePath string, numero int) string {
	return filepath.Join(storagePath, fmt.Sprintf("ticket_%d.pdf", numero))
}

// RenderTicketPDF writes the ticket of venta to w.
func RenderTicketPDF(w io.Writer, venta *model.Venta, negocio string) error {
	// A7 is not in fpdf's named list
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr(negocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Ticket N° %d  ·  %s", venta.NumeroTicket, venta.Mesa)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, a := range venta.Articulos {
		nombre := []rune(a.Nombre)
		if len(nombre) > 22 {
			nombre = append(nombre[:21], '.')
		}
		pdf.CellFormat(col1, 5, tr(string(nombre)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", a.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "Bs "+a.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !venta.Descuento.IsZero() {
		pdf.CellFormat(col1+col2, 5, fmt.Sprintf("Descuento (%s%%):", venta.DescuentoPct.String()), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-Bs "+venta.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Bs "+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment methods ──────────────────────────────────────────────────────
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	for _, pago := range venta.Pagos {
		pdf.CellFormat(col1+col2, 4, "Pago ("+pago.Metodo+"):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "Bs "+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if venta.Vuelto.IsPositive() {
		pdf.CellFormat(col1+col2, 4, "Cambio:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "Bs "+venta.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su visita!"), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render ticket: %w", err)
	}
	return nil
}

// GenerateReportePDF renders the combined report and returns the PDF bytes.
func GenerateReportePDF(r reporte.Resumen, negocio string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(negocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Reporte de ingresos y gastos · "+periodo(r)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	filas := []struct{ label, valor string }{
		{"Ingresos (ventas)", r.TotalVentas.StringFixed(2)},
		{"Egresos", r.TotalEgresos.StringFixed(2)},
		{"Gastos diarios", r.TotalGastos.StringFixed(2)},
		{"Inversión total", r.Inversion.StringFixed(2)},
		{"Ganancias brutas", r.GananciaBruta.StringFixed(2)},
		{"Pérdidas", r.Perdidas.StringFixed(2)},
		{"Saldo neto", r.SaldoNeto.StringFixed(2)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for i, f := range filas {
		if i == len(filas)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(contentW*0.6, 7, tr(f.label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 7, "Bs "+f.valor, "B", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Detail tables ────────────────────────────────────────────────────────
	seccion := func(titulo string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(titulo), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
	}
	fila := func(fecha time.Time, detalle, monto string) {
		pdf.CellFormat(contentW*0.22, 5, fecha.Format("02/01/2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.58, 5, tr(detalle), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.20, 5, "Bs "+monto, "", 1, "R", false, 0, "")
	}

	seccion(fmt.Sprintf("Ventas (%d)", len(r.Ventas)))
	for _, v := range r.Ventas {
		fila(v.CreatedAt, fmt.Sprintf("Ticket %d · %s · %s", v.NumeroTicket, v.Mesa, v.MetodoPago), v.Total.StringFixed(2))
	}
	pdf.Ln(3)

	seccion(fmt.Sprintf("Egresos (%d)", len(r.Egresos)))
	for _, e := range r.Egresos {
		detalle := e.Descripcion
		if e.Tipo == model.EgresoServicio && e.NombreServicio != "" {
			detalle = e.NombreServicio
		}
		fila(e.Timestamp, recortar(detalle+" · "+e.QuienPago, 70), e.Total.StringFixed(2))
	}
	pdf.Ln(3)

	seccion(fmt.Sprintf("Gastos diarios (%d)", len(r.Gastos)))
	for _, g := range r.Gastos {
		fila(g.Timestamp, recortar("Factura "+g.NumeroFactura+" · "+g.PagadoPor, 70), g.Total.StringFixed(2))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render reporte: %w", err)
	}
	return buf.Bytes(), nil
}

func periodo(r reporte.Resumen) string {
	switch {
	case r.Desde != nil && r.Hasta != nil:
		return r.Desde.Format("02/01/2006") + " al " + r.Hasta.Format("02/01/2006")
	case r.Desde != nil:
		return "desde " + r.Desde.Format("02/01/2006")
	case r.Hasta != nil:
		return "hasta " + r.Hasta.Format("02/01/2006")
	default:
		return "histórico"
	}
}

func recortar(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "."
}
