package tipos

import (
	"strings"
	"time"
)

// Urgencia del tipo de solicitud.
// @Enum BAJA, MEDIA, ALTA
type Urgencia string

const (
	UrgenciaBaja  Urgencia = "BAJA"
	UrgenciaMedia Urgencia = "MEDIA"
	UrgenciaAlta  Urgencia = "ALTA"
)

func ParseUrgencia(s string) (Urgencia, bool) {
	u := Urgencia(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case UrgenciaBaja, UrgenciaMedia, UrgenciaAlta:
		return u, true
	default:
		return "", false
	}
}

const (
	PlazoMin = 1
	PlazoMax = 365
)

// TipoSolicitud define el plazo legal de respuesta (días calendario).
type TipoSolicitud struct {
	ID        string
	Nombre    string
	PlazoDias int
	Urgencia  Urgencia
	Activo    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func PlazoValido(d int) bool {
	return d >= PlazoMin && d <= PlazoMax
}
