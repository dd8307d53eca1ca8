package entidades

import (
	"strings"
	"time"
)

// Entidad es una organización externa que envía correspondencia.
// Los correos la referencian por id; nunca la poseen.
type Entidad struct {
	ID     string
	Nombre string

	// Dominios de correo permitidos (minúsculas, sin "@", sin repetidos). Nunca vacío.
	Dominios []string

	// Usuario responsable por defecto de los correos de la entidad.
	ResponsableID string

	Activa bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PermiteRemitente valida el dominio de un remitente tipo email.
// Si el remitente no es un email (p.ej. un nombre) no hay dominio que validar.
func (e Entidad) PermiteRemitente(remitente string) bool {
	remitente = strings.ToLower(strings.TrimSpace(remitente))
	at := strings.LastIndex(remitente, "@")
	if at < 0 {
		return true
	}
	dom := remitente[at+1:]
	for _, d := range e.Dominios {
		if dom == d || strings.HasSuffix(dom, "."+d) {
			return true
		}
	}
	return false
}
