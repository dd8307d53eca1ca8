package correos

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	integrador = Actor{UsuarioID: "u-integrador", Roles: []string{"ROLE_INTEGRADOR"}}
	gestor     = Actor{UsuarioID: "u-gestor", Roles: []string{"ROLE_GESTOR"}}
	revisor    = Actor{UsuarioID: "u-revisor", Roles: []string{"ROLE_REVISOR"}}
	admin      = Actor{UsuarioID: "u-admin", Roles: []string{"ROLE_ADMIN"}}
)

func TestService_Create(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto:          "Solicitud de información",
		Remitente:       "Despacho@MinSalud.gov.co",
		EntidadID:       "ent-salud",
		TipoSolicitudID: "tutela",
	})
	require.NoError(t, err)

	assert.Equal(t, EstadoRecepcion, c.Estado)
	assert.Equal(t, testNow, c.FechaRecepcion)
	assert.Equal(t, testNow.AddDate(0, 0, 3), c.FechaVencimiento)
	assert.Equal(t, "u-gestor", c.GestorID, "responsable de la entidad es gestor activo")
	assert.True(t, strings.HasPrefix(c.Radicado, "E-20250615-"), c.Radicado)

	fs, err := env.svc.Flujo(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, EstadoRecepcion, fs[0].Etapa)
	assert.True(t, fs[0].Abierto())
	assert.Equal(t, "u-integrador", fs[0].UsuarioID)
}

func TestService_Create_Validaciones(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	base := CreateInput{
		Asunto:          "x",
		Remitente:       "a@ins.gov.co",
		EntidadID:       "ent-ins",
		TipoSolicitudID: "peticion",
	}

	in := base
	in.Remitente = "alguien@gmail.com"
	_, err := env.svc.Create(ctx, integrador, in)
	assert.ErrorIs(t, err, ErrDominioNoPermitido)

	in = base
	in.TipoSolicitudID = "no-existe"
	_, err = env.svc.Create(ctx, integrador, in)
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	in = base
	in.GestorID = "u-revisor"
	_, err = env.svc.Create(ctx, integrador, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = base
	in.Asunto = " "
	_, err = env.svc.Create(ctx, integrador, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// sin responsable en la entidad => queda sin asignar
	c, err := env.svc.Create(ctx, integrador, base)
	require.NoError(t, err)
	assert.Empty(t, c.GestorID)
}

func TestService_Asignar(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto: "x", Remitente: "a@ins.gov.co", EntidadID: "ent-ins", TipoSolicitudID: "peticion",
	})
	require.NoError(t, err)

	_, err = env.svc.Asignar(ctx, integrador, c.ID, "u-revisor")
	assert.ErrorIs(t, err, ErrInvalidInput)

	later := testNow.Add(3 * time.Hour)
	env.svc.now = func() time.Time { return later }

	got, err := env.svc.Asignar(ctx, integrador, c.ID, "u-gestor2")
	require.NoError(t, err)
	assert.Equal(t, EstadoElaboracion, got.Estado)
	assert.Equal(t, "u-gestor2", got.GestorID)

	fs, err := env.svc.Flujo(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, EstadoRecepcion, fs[0].Etapa)
	require.NotNil(t, fs[0].FechaFin)
	assert.InDelta(t, 3.0, fs[0].DuracionHoras, 0.001)
	assert.Equal(t, EstadoElaboracion, fs[1].Etapa)
	assert.Equal(t, "u-gestor2", fs[1].UsuarioID)
	assert.True(t, fs[1].Abierto())
}

func TestService_Transicionar_Roles(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto: "x", Remitente: "a@minsalud.gov.co", EntidadID: "ent-salud", TipoSolicitudID: "peticion",
	})
	require.NoError(t, err)

	_, err = env.svc.Transicionar(ctx, revisor, c.ID, TransicionInput{Hacia: EstadoRevision})
	assert.ErrorIs(t, err, ErrForbidden)

	env.svc.now = func() time.Time { return testNow.Add(time.Hour) }
	got, err := env.svc.Transicionar(ctx, gestor, c.ID, TransicionInput{Hacia: EstadoRevision, ResponsableID: "u-revisor"})
	require.NoError(t, err)
	assert.Equal(t, EstadoRevision, got.Estado)

	_, err = env.svc.Transicionar(ctx, gestor, c.ID, TransicionInput{Hacia: EstadoElaboracion})
	assert.ErrorIs(t, err, ErrTransicionInvalida)

	_, err = env.svc.Transicionar(ctx, revisor, c.ID, TransicionInput{Hacia: EstadoEnviado})
	assert.ErrorIs(t, err, ErrForbidden)

	env.svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	got, err = env.svc.Transicionar(ctx, admin, c.ID, TransicionInput{Hacia: EstadoEnviado})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.RadicadoSalida, "S-"))
	require.NotNil(t, got.FechaCierre)

	fs, err := env.svc.Flujo(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, fs, 3)
	assert.Equal(t, "u-revisor", fs[1].UsuarioID)
	abiertos := 0
	for _, f := range fs {
		if f.Abierto() {
			abiertos++
		}
	}
	assert.Equal(t, 1, abiertos)
}

func TestService_FalloDeFlujoNoDejaCorreoAdelantado(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	errDB := errors.New("flujo_correo no disponible")

	env.flujos.failCreate = errDB
	_, err := env.svc.Create(ctx, integrador, CreateInput{
		ID: "c-sin-flujo", Asunto: "x", Remitente: "a@ins.gov.co", EntidadID: "ent-ins", TipoSolicitudID: "peticion",
	})
	assert.ErrorIs(t, err, errDB)
	_, err = env.correos.GetByID(ctx, "c-sin-flujo")
	assert.ErrorIs(t, err, ErrNotFound, "radicación deshecha")

	env.flujos.failCreate = nil
	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto: "x", Remitente: "a@minsalud.gov.co", EntidadID: "ent-salud", TipoSolicitudID: "peticion",
	})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return testNow.Add(time.Hour) }
	env.flujos.failCreate = errDB
	_, err = env.svc.Transicionar(ctx, gestor, c.ID, TransicionInput{Hacia: EstadoRevision})
	assert.ErrorIs(t, err, errDB)
	got, err := env.correos.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, EstadoRecepcion, got.Estado)
	assert.Equal(t, c.UpdatedAt, got.UpdatedAt)

	_, err = env.svc.Asignar(ctx, integrador, c.ID, "u-gestor2")
	assert.ErrorIs(t, err, errDB)
	got, err = env.correos.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, EstadoRecepcion, got.Estado)
	assert.Equal(t, "u-gestor", got.GestorID)
}

func TestService_VencidoYCongelado(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Tutela (3 días) recibida hace 5 días => 2 días vencido.
	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto: "Tutela", Remitente: "a@ins.gov.co", EntidadID: "ent-ins", TipoSolicitudID: "tutela",
		FechaRecepcion: testNow.AddDate(0, 0, -5),
	})
	require.NoError(t, err)

	v, err := env.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, v.DiasTranscurridos)
	assert.Equal(t, -2, v.DiasRestantes)
	assert.True(t, v.Vencido)

	_, err = env.svc.Transicionar(ctx, integrador, c.ID, TransicionInput{Hacia: EstadoVencido})
	require.NoError(t, err)

	_, err = env.svc.Transicionar(ctx, admin, c.ID, TransicionInput{Hacia: EstadoEnviado, RadicadoSalida: "S-1"})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return testNow.AddDate(0, 0, 10) }
	v, err = env.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, v.DiasTranscurridos, "cerrado: congela en FechaCierre")
	assert.False(t, v.Vencido)
	assert.Equal(t, "S-1", v.RadicadoSalida)
}

func TestService_VencidoEnPlazoRechazado(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto: "x", Remitente: "a@ins.gov.co", EntidadID: "ent-ins", TipoSolicitudID: "peticion",
	})
	require.NoError(t, err)

	_, err = env.svc.Transicionar(ctx, integrador, c.ID, TransicionInput{Hacia: EstadoVencido})
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}

func TestService_UpdateYDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c, err := env.svc.Create(ctx, integrador, CreateInput{
		Asunto: "x", Remitente: "a@ins.gov.co", EntidadID: "ent-ins", TipoSolicitudID: "peticion",
	})
	require.NoError(t, err)

	malo := "otro@gmail.com"
	_, err = env.svc.Update(ctx, c.ID, UpdateInput{Remitente: &malo})
	assert.ErrorIs(t, err, ErrDominioNoPermitido)

	asunto := "Nuevo asunto"
	got, err := env.svc.Update(ctx, c.ID, UpdateInput{Asunto: &asunto})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo asunto", got.Asunto)

	require.NoError(t, env.svc.Delete(ctx, c.ID))
	_, err = env.svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Consultar_UsaSnapshot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.svc.Create(ctx, integrador, CreateInput{
			Asunto: "x", Remitente: "a@ins.gov.co", EntidadID: "ent-ins", TipoSolicitudID: "peticion",
		})
		require.NoError(t, err)
	}

	p, err := env.svc.Consultar(ctx, ConsultaParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalItems)
	for _, v := range p.Items {
		assert.Equal(t, "Instituto Nacional de Salud", v.EntidadNombre)
		assert.Equal(t, 15, v.DiasRestantes)
	}
}
