package metricas

import (
	"fmt"
	"io"

	"gestion-correos/internal/domain/correos"

	"github.com/go-pdf/fpdf"
)

// EscribirReporte genera el PDF del tablero (A4 vertical) en w.
func EscribirReporte(w io.Writer, m DashboardMetrics, titulo string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(titulo, true)
	pdf.AddPage()

	// las fuentes core son cp1252; sin esto los acentos salen rotos
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 9, tr(titulo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Generado: "+m.GeneradoEn.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Resumen
	resumen := [][2]string{
		{"Total de correos", fmt.Sprintf("%d", m.TotalCorreos)},
		{"Cumplidos (enviados)", fmt.Sprintf("%d", m.CorreosCumplidos)},
		{"Vencidos", fmt.Sprintf("%d", m.CorreosVencidos)},
		{"Cumplimiento", fmt.Sprintf("%.2f %%", m.PorcentajeCumplimiento)},
		{"Tiempo promedio de respuesta", fmt.Sprintf("%.2f días", m.TiempoPromedioRespuesta)},
	}
	seccion(pdf, tr, contentW, "Resumen")
	for _, r := range resumen {
		fila(pdf, tr, contentW, r[0], r[1])
	}

	seccion(pdf, tr, contentW, "Correos por estado")
	for _, e := range correos.Estados {
		fila(pdf, tr, contentW, string(e), fmt.Sprintf("%d", m.CorreosPorEstado[e]))
	}

	seccion(pdf, tr, contentW, "Correos por entidad")
	for _, g := range m.CorreosPorEntidad {
		fila(pdf, tr, contentW, g.Nombre, fmt.Sprintf("%d", g.Total))
	}

	seccion(pdf, tr, contentW, "Correos por gestor")
	for _, g := range m.CorreosPorGestor {
		fila(pdf, tr, contentW, g.Nombre, fmt.Sprintf("%d", g.Total))
	}

	seccion(pdf, tr, contentW, "Tendencia mensual")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.4, 6, "Mes", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 6, "Recibidos", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.3, 6, "Cumplidos", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range m.TendenciaMensual {
		pdf.CellFormat(contentW*0.4, 5, p.Mes, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, fmt.Sprintf("%d", p.Total), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, fmt.Sprintf("%d", p.Cumplidos), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func seccion(pdf *fpdf.Fpdf, tr func(string) string, w float64, titulo string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(w, 7, tr(titulo), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
}

func fila(pdf *fpdf.Fpdf, tr func(string) string, w float64, k, v string) {
	pdf.CellFormat(w*0.7, 5, tr(k), "", 0, "L", false, 0, "")
	pdf.CellFormat(w*0.3, 5, tr(v), "", 1, "R", false, 0, "")
}
