package correos

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Filtro es el conjunto cerrado de filtros de listados y métricas.
// Todos se combinan con AND; un campo vacío no filtra.
type Filtro struct {
	FechaInicio     time.Time // inclusive, sobre FechaRecepcion
	FechaFin        time.Time // inclusive
	GestorID        string
	EntidadID       string
	Estado          Estado
	TipoSolicitudID string
	Urgencia        string
}

func (f Filtro) Coincide(v CorreoVista) bool {
	if !f.FechaInicio.IsZero() && v.FechaRecepcion.Before(f.FechaInicio) {
		return false
	}
	if !f.FechaFin.IsZero() && v.FechaRecepcion.After(f.FechaFin) {
		return false
	}
	if f.GestorID != "" && v.GestorID != f.GestorID {
		return false
	}
	if f.EntidadID != "" && v.EntidadID != f.EntidadID {
		return false
	}
	if f.Estado != "" && v.Estado != f.Estado {
		return false
	}
	if f.TipoSolicitudID != "" && v.TipoSolicitudID != f.TipoSolicitudID {
		return false
	}
	if f.Urgencia != "" && v.Urgencia != f.Urgencia {
		return false
	}
	return true
}

// ParseFiltro lee los filtros de la query string.
// Fechas en YYYY-MM-DD (fecha_fin cubre el día completo) o RFC3339.
func ParseFiltro(q url.Values) (Filtro, error) {
	f := Filtro{
		GestorID:        strings.TrimSpace(q.Get("gestor_id")),
		EntidadID:       strings.TrimSpace(q.Get("entidad_id")),
		TipoSolicitudID: strings.TrimSpace(q.Get("tipo_solicitud_id")),
		Urgencia:        strings.ToUpper(strings.TrimSpace(q.Get("urgencia"))),
	}
	if v := strings.TrimSpace(q.Get("estado")); v != "" {
		e, ok := ParseEstado(v)
		if !ok {
			return Filtro{}, fmt.Errorf("%w: estado %q", ErrInvalidInput, v)
		}
		f.Estado = e
	}

	var err error
	if f.FechaInicio, _, err = parseFecha(q.Get("fecha_inicio")); err != nil {
		return Filtro{}, err
	}
	fin, soloDia, err := parseFecha(q.Get("fecha_fin"))
	if err != nil {
		return Filtro{}, err
	}
	if soloDia {
		fin = fin.Add(24*time.Hour - time.Nanosecond)
	}
	f.FechaFin = fin
	return f, nil
}

func parseFecha(v string) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: fecha %q", ErrInvalidInput, v)
	}
	return t, false, nil
}
