package correos

import (
	"strings"
	"time"
)

// Estado del correo dentro del flujo de aprobación.
// @Enum RECEPCION, ELABORACION, REVISION, APROBACION, ENVIADO, VENCIDO, ARCHIVADO
type Estado string

const (
	EstadoRecepcion   Estado = "RECEPCION"
	EstadoElaboracion Estado = "ELABORACION"
	EstadoRevision    Estado = "REVISION"
	EstadoAprobacion  Estado = "APROBACION"
	EstadoEnviado     Estado = "ENVIADO"
	EstadoVencido     Estado = "VENCIDO"
	EstadoArchivado   Estado = "ARCHIVADO"
)

// Estados en orden de flujo. Métricas y reportes lo usan para rellenar ceros.
var Estados = []Estado{
	EstadoRecepcion,
	EstadoElaboracion,
	EstadoRevision,
	EstadoAprobacion,
	EstadoEnviado,
	EstadoVencido,
	EstadoArchivado,
}

func ParseEstado(s string) (Estado, bool) {
	e := Estado(strings.ToUpper(strings.TrimSpace(s)))
	for _, x := range Estados {
		if e == x {
			return e, true
		}
	}
	return "", false
}

// Cerrado: ENVIADO o ARCHIVADO. El SLA de un correo cerrado queda congelado en FechaCierre.
func (e Estado) Cerrado() bool {
	return e == EstadoEnviado || e == EstadoArchivado
}

type Correo struct {
	ID             string
	Radicado       string
	RadicadoSalida string
	Asunto         string
	Remitente      string
	Descripcion    string

	EntidadID       string
	TipoSolicitudID string
	GestorID        string // "" mientras no se asigna

	Estado Estado

	FechaRecepcion   time.Time
	FechaVencimiento time.Time
	FechaCierre      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FlujoCorreo es una fila de trazabilidad: una por etapa recorrida.
// Una vez cerrada (FechaFin != nil) no se vuelve a tocar.
type FlujoCorreo struct {
	ID            string
	CorreoID      string
	Etapa         Estado
	UsuarioID     string
	FechaInicio   time.Time
	FechaFin      *time.Time
	DuracionHoras float64
	Comentario    string
}

func (f FlujoCorreo) Abierto() bool { return f.FechaFin == nil }

// CorreoVista es el correo con sus referencias resueltas y los campos SLA derivados.
type CorreoVista struct {
	Correo

	EntidadNombre string
	TipoNombre    string
	Urgencia      string
	PlazoDias     int
	GestorNombre  string

	DiasTranscurridos int
	DiasRestantes     int
	Vencido           bool
}
