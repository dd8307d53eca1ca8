// Package metricas arma el tablero a partir de un snapshot de correos.
package metricas

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"gestion-correos/internal/domain/correos"

	"github.com/shopspring/decimal"
)

const (
	MesesDefault = 6
	MesesMax     = 36

	SinAsignar = "Sin asignar"
)

type Grupo struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Total  int    `json:"total"`
}

type PuntoMensual struct {
	Mes       string `json:"mes"` // YYYY-MM
	Total     int    `json:"total"`
	Cumplidos int    `json:"cumplidos"`
}

type DashboardMetrics struct {
	TotalCorreos            int                    `json:"total_correos"`
	CorreosPorEstado        map[correos.Estado]int `json:"correos_por_estado"`
	CorreosVencidos         int                    `json:"correos_vencidos"`
	CorreosCumplidos        int                    `json:"correos_cumplidos"`
	PorcentajeCumplimiento  float64                `json:"porcentaje_cumplimiento"`
	TiempoPromedioRespuesta float64                `json:"tiempo_promedio_respuesta"`
	CorreosPorEntidad       []Grupo                `json:"correos_por_entidad"`
	CorreosPorGestor        []Grupo                `json:"correos_por_gestor"`
	TendenciaMensual        []PuntoMensual         `json:"tendencia_mensual"`
	GeneradoEn              time.Time              `json:"generado_en"`
}

// Agregar pliega los correos del snapshot que pasan el filtro.
// Una referencia rota corta la pasada con correos.ErrReferenceNotFound.
func Agregar(snap correos.Snapshot, filtro correos.Filtro, meses int) (DashboardMetrics, error) {
	vistas, err := snap.Vistas(filtro)
	if err != nil {
		return DashboardMetrics{}, err
	}
	if meses <= 0 {
		meses = MesesDefault
	}
	meses = min(meses, MesesMax)

	m := DashboardMetrics{
		TotalCorreos:     len(vistas),
		CorreosPorEstado: make(map[correos.Estado]int, len(correos.Estados)),
		GeneradoEn:       snap.Now,
	}
	for _, e := range correos.Estados {
		m.CorreosPorEstado[e] = 0
	}

	tendencia, idx := mesesAtras(snap.Now, meses)
	porEntidad := map[string]*Grupo{}
	porGestor := map[string]*Grupo{}
	sumaCerrados, cerrados := 0, 0

	for _, v := range vistas {
		m.CorreosPorEstado[v.Estado]++
		if v.Vencido {
			m.CorreosVencidos++
		}
		if v.Estado == correos.EstadoEnviado {
			m.CorreosCumplidos++
		}
		if v.Estado.Cerrado() {
			sumaCerrados += v.DiasTranscurridos
			cerrados++
		}

		contar(porEntidad, v.EntidadID, v.EntidadNombre)
		gNombre := v.GestorNombre
		if v.GestorID == "" {
			gNombre = SinAsignar
		}
		contar(porGestor, v.GestorID, gNombre)

		if i, ok := idx[mesKey(v.FechaRecepcion.In(snap.Now.Location()))]; ok {
			tendencia[i].Total++
			if v.Estado == correos.EstadoEnviado {
				tendencia[i].Cumplidos++
			}
		}
	}

	m.PorcentajeCumplimiento = porcentaje(m.CorreosCumplidos, m.TotalCorreos)
	m.TiempoPromedioRespuesta = promedio(sumaCerrados, cerrados)
	m.CorreosPorEntidad = ordenar(porEntidad)
	m.CorreosPorGestor = ordenar(porGestor)
	m.TendenciaMensual = tendencia
	return m, nil
}

func contar(g map[string]*Grupo, id, nombre string) {
	if x, ok := g[id]; ok {
		x.Total++
		return
	}
	g[id] = &Grupo{ID: id, Nombre: nombre, Total: 1}
}

// count desc, nombre asc, id asc.
func ordenar(g map[string]*Grupo) []Grupo {
	out := make([]Grupo, 0, len(g))
	for _, x := range g {
		out = append(out, *x)
	}
	slices.SortFunc(out, func(a, b Grupo) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		if c := strings.Compare(a.Nombre, b.Nombre); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func porcentaje(parte, total int) float64 {
	if total == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(int64(parte)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		Float64()
	return f
}

func promedio(suma, n int) float64 {
	if n == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(int64(suma)).Div(decimal.NewFromInt(int64(n))).Round(2).Float64()
	return f
}

func mesKey(t time.Time) string { return t.Format("2006-01") }

// mesesAtras devuelve los últimos n meses calendario terminando en el de now, ascendentes.
func mesesAtras(now time.Time, n int) ([]PuntoMensual, map[string]int) {
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]PuntoMensual, n)
	idx := make(map[string]int, n)
	for i := 0; i < n; i++ {
		k := mesKey(base.AddDate(0, -(n - 1 - i), 0))
		out[i] = PuntoMensual{Mes: k}
		idx[k] = i
	}
	return out, idx
}
