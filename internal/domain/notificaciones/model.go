package notificaciones

import "time"

// Tipo de notificación.
// @Enum RECEPCION, ASIGNACION, VENCIMIENTO, REVISION, APROBACION, ENVIO, SISTEMA
type Tipo string

const (
	TipoRecepcion   Tipo = "RECEPCION"
	TipoAsignacion  Tipo = "ASIGNACION"
	TipoVencimiento Tipo = "VENCIMIENTO"
	TipoRevision    Tipo = "REVISION"
	TipoAprobacion  Tipo = "APROBACION"
	TipoEnvio       Tipo = "ENVIO"
	TipoSistema     Tipo = "SISTEMA"
)

// Todos es el destinatario comodín.
const Todos = "all"

// Notificacion no se persiste: se deriva en cada lectura.
// Solo la marca de leída (simulada) vive en un LecturasRepository.
type Notificacion struct {
	ID        string    `json:"id"`
	Tipo      Tipo      `json:"tipo"`
	Titulo    string    `json:"titulo"`
	Mensaje   string    `json:"mensaje"`
	CorreoID  string    `json:"correo_id,omitempty"`
	UsuarioID string    `json:"usuario_id"`
	Fecha     time.Time `json:"fecha"`
	Urgente   bool      `json:"urgente"`
	Leida     bool      `json:"leida"`
	Destino   string    `json:"destino"`
}
