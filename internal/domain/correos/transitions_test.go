package correos

import (
	"testing"

	"gestion-correos/internal/domain/usuarios"

	"github.com/stretchr/testify/assert"
)

func TestPuedeTransicionar(t *testing.T) {
	cases := []struct {
		name          string
		desde, hacia  Estado
		diasRestantes int
		ok            bool
	}{
		{"avanza un paso", EstadoRecepcion, EstadoElaboracion, 5, true},
		{"salta etapas", EstadoElaboracion, EstadoAprobacion, 5, true},
		{"retrocede", EstadoRevision, EstadoElaboracion, 5, false},
		{"mismo estado", EstadoRevision, EstadoRevision, 5, false},
		{"vencido en plazo", EstadoElaboracion, EstadoVencido, 0, false},
		{"vencido fuera de plazo", EstadoElaboracion, EstadoVencido, -1, true},
		{"enviado no vence", EstadoEnviado, EstadoVencido, -3, false},
		{"vencido a enviado", EstadoVencido, EstadoEnviado, -3, true},
		{"vencido a archivado", EstadoVencido, EstadoArchivado, -3, true},
		{"vencido a revision", EstadoVencido, EstadoRevision, -3, false},
		{"enviado a archivado", EstadoEnviado, EstadoArchivado, 2, true},
		{"archivado es final", EstadoArchivado, EstadoEnviado, 2, false},
		{"estado desconocido", EstadoRecepcion, Estado("FIRMA"), 2, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := PuedeTransicionar(tc.desde, tc.hacia, tc.diasRestantes)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrTransicionInvalida)
			}
		})
	}
}

func TestRolesPara(t *testing.T) {
	assert.ElementsMatch(t, []string{"ROLE_ADMIN", "ROLE_APROBADOR"}, RolesPara(EstadoEnviado))
	assert.Contains(t, RolesPara(EstadoRevision), usuarios.RolGestor.Token())
	assert.NotContains(t, RolesPara(EstadoRevision), usuarios.RolRevisor.Token())
}
