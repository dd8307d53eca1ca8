package metricas

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gestion-correos/internal/domain/correos"
	"gestion-correos/internal/domain/usuarios"
	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	auditores := middleware.RequireRole(usuarios.Tokens(usuarios.RolAdmin, usuarios.RolAuditor)...)

	r.Route("/metricas", func(mr chi.Router) {
		mr.Use(middleware.RequireAuth)
		mr.Get("/", metricasHandler(svc))
		mr.With(auditores).Get("/reporte.pdf", reporteHandler(svc))
	})
}

// metricasHandler godoc
// @Summary Tablero de métricas
// @Description Conteos por estado, cumplimiento, tiempos y tendencia. Acepta los mismos filtros que /correos.
// @Tags metricas
// @Produce json
// @Param estado query string false "Estado"
// @Param entidad_id query string false "Entidad"
// @Param gestor_id query string false "Gestor"
// @Param tipo_solicitud_id query string false "Tipo de solicitud"
// @Param urgencia query string false "Urgencia"
// @Param fecha_inicio query string false "YYYY-MM-DD"
// @Param fecha_fin query string false "YYYY-MM-DD"
// @Param meses query int false "Meses de tendencia"
// @Success 200 {object} DashboardMetrics
// @Router /metricas [get]
func metricasHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := calcular(w, r, svc)
		if !ok {
			return
		}
		httpjson.Write(w, http.StatusOK, m)
	}
}

// reporteHandler godoc
// @Summary Reporte PDF del tablero
// @Tags metricas
// @Produce application/pdf
// @Success 200 {file} file
// @Router /metricas/reporte.pdf [get]
func reporteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := calcular(w, r, svc)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := EscribirReporte(&buf, m, "Reporte de gestión de correos"); err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="reporte-%s.pdf"`, m.GeneradoEn.Format("20060102")))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func calcular(w http.ResponseWriter, r *http.Request, svc *Service) (DashboardMetrics, bool) {
	q := r.URL.Query()
	filtro, err := correos.ParseFiltro(q)
	if err != nil {
		correos.WriteError(w, err)
		return DashboardMetrics{}, false
	}
	meses := 0
	if v := strings.TrimSpace(q.Get("meses")); v != "" {
		if meses, err = strconv.Atoi(v); err != nil || meses < 1 {
			httpjson.Error(w, http.StatusBadRequest, "meses inválido")
			return DashboardMetrics{}, false
		}
	}

	m, err := svc.Calcular(r.Context(), filtro, meses)
	if err != nil {
		correos.WriteError(w, err)
		return DashboardMetrics{}, false
	}
	return m, true
}
