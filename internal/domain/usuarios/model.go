package usuarios

import (
	"strings"
	"time"
)

// Rol define qué vistas y acciones alcanza un usuario.
// @Enum INTEGRADOR, GESTOR, REVISOR, APROBADOR, AUDITOR, ADMIN
type Rol string

const (
	RolIntegrador Rol = "INTEGRADOR"
	RolGestor     Rol = "GESTOR"
	RolRevisor    Rol = "REVISOR"
	RolAprobador  Rol = "APROBADOR"
	RolAuditor    Rol = "AUDITOR"
	RolAdmin      Rol = "ADMIN"
)

// Roles lista todos los roles válidos.
var Roles = []Rol{RolIntegrador, RolGestor, RolRevisor, RolAprobador, RolAuditor, RolAdmin}

// Token devuelve el rol como lo reconocen los route guards (ROLE_ADMIN, ...).
func (r Rol) Token() string {
	return "ROLE_" + string(r)
}

func (r Rol) Valid() bool {
	for _, x := range Roles {
		if r == x {
			return true
		}
	}
	return false
}

// ParseRol acepta "gestor", "GESTOR" o "ROLE_GESTOR".
func ParseRol(s string) (Rol, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	r := Rol(s)
	return r, r.Valid()
}

// Tokens convierte una lista de roles a su forma token.
func Tokens(roles ...Rol) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.Token())
	}
	return out
}

type Usuario struct {
	ID     string
	Nombre string
	Email  string
	Rol    Rol
	Activo bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
