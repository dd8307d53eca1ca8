package correos

import (
	"fmt"

	"gestion-correos/internal/domain/usuarios"
)

// posición en el camino principal; VENCIDO queda fuera.
var orden = map[Estado]int{
	EstadoRecepcion:   0,
	EstadoElaboracion: 1,
	EstadoRevision:    2,
	EstadoAprobacion:  3,
	EstadoEnviado:     4,
	EstadoArchivado:   5,
}

// PuedeTransicionar valida el paso desde -> hacia.
// Solo se avanza (se pueden saltar etapas). VENCIDO exige diasRestantes < 0 y
// desde VENCIDO solo queda ENVIADO o ARCHIVADO. ARCHIVADO es final.
func PuedeTransicionar(desde, hacia Estado, diasRestantes int) error {
	if _, ok := ParseEstado(string(hacia)); !ok {
		return fmt.Errorf("%w: estado %q desconocido", ErrTransicionInvalida, hacia)
	}
	if desde == hacia {
		return fmt.Errorf("%w: el correo ya está en %s", ErrTransicionInvalida, desde)
	}
	if desde == EstadoArchivado {
		return fmt.Errorf("%w: ARCHIVADO es final", ErrTransicionInvalida)
	}

	switch {
	case hacia == EstadoVencido:
		if desde.Cerrado() {
			return fmt.Errorf("%w: %s -> VENCIDO", ErrTransicionInvalida, desde)
		}
		if diasRestantes >= 0 {
			return fmt.Errorf("%w: el correo sigue en plazo (%d días restantes)", ErrTransicionInvalida, diasRestantes)
		}
		return nil
	case desde == EstadoVencido:
		if hacia == EstadoEnviado || hacia == EstadoArchivado {
			return nil
		}
		return fmt.Errorf("%w: VENCIDO -> %s", ErrTransicionInvalida, hacia)
	}

	if orden[hacia] <= orden[desde] {
		return fmt.Errorf("%w: %s -> %s retrocede", ErrTransicionInvalida, desde, hacia)
	}
	return nil
}

var rolesPorEstado = map[Estado][]usuarios.Rol{
	EstadoElaboracion: {usuarios.RolIntegrador, usuarios.RolGestor},
	EstadoRevision:    {usuarios.RolGestor},
	EstadoAprobacion:  {usuarios.RolRevisor},
	EstadoEnviado:     {usuarios.RolAprobador},
	EstadoVencido:     {usuarios.RolIntegrador},
	EstadoArchivado:   {usuarios.RolIntegrador},
}

// RolesPara devuelve los tokens de rol que pueden mover un correo a hacia. ADMIN siempre puede.
func RolesPara(hacia Estado) []string {
	roles := append([]usuarios.Rol{usuarios.RolAdmin}, rolesPorEstado[hacia]...)
	return usuarios.Tokens(roles...)
}
