package correos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencias_Catalogo(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto:          "Tutela",
		Remitente:       "despacho@minsalud.gov.co",
		EntidadID:       "ent-salud",
		TipoSolicitudID: "tutela",
	})
	require.NoError(t, err)

	casos := []struct {
		ref  ReferenciaCatalogo
		id   string
		want bool
	}{
		{ReferenciaGestor(env.correos), "u-gestor", true},
		{ReferenciaGestor(env.correos), "u-gestor2", false},
		{ReferenciaGestor(env.correos), "", false},
		{ReferenciaEntidad(env.correos), "ent-salud", true},
		{ReferenciaEntidad(env.correos), "ent-ins", false},
		{ReferenciaTipo(env.correos), " tutela ", true},
		{ReferenciaTipo(env.correos), "peticion", false},
	}
	for _, c := range casos {
		got, err := c.ref.Referenciado(ctx, c.id)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, c.id)
	}
}
