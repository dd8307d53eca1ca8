package memory

import (
	"context"
	"testing"
	"time"

	"gestion-correos/internal/domain/correos"
	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/usuarios"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsuarioRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUsuarioRepo()

	u := usuarios.Usuario{ID: "u1", Nombre: "Ana", Rol: usuarios.RolGestor}
	require.NoError(t, repo.Create(ctx, u))
	assert.ErrorIs(t, repo.Create(ctx, u), ErrAlreadyExists)

	u.Nombre = "Ana María"
	require.NoError(t, repo.Update(ctx, u))
	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Nombre)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, usuarios.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, u), usuarios.ErrNotFound)
}

func TestEntidadRepo_CopiaDominios(t *testing.T) {
	ctx := context.Background()
	repo := NewEntidadRepo()

	doms := []string{"ins.gov.co"}
	require.NoError(t, repo.Create(ctx, entidades.Entidad{ID: "e1", Dominios: doms}))
	doms[0] = "mutado"

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ins.gov.co"}, got.Dominios)
}

func TestCorreoRepo_RadicadoUnico(t *testing.T) {
	ctx := context.Background()
	repo := NewCorreoRepo()

	require.NoError(t, repo.Create(ctx, correos.Correo{ID: "c1", Radicado: "E-1"}))
	assert.ErrorIs(t, repo.Create(ctx, correos.Correo{ID: "c2", Radicado: "e-1"}), correos.ErrRadicadoDuplicado)

	require.NoError(t, repo.Delete(ctx, "c1"))
	require.NoError(t, repo.Create(ctx, correos.Correo{ID: "c2", Radicado: "E-1"}))
}

func TestFlujoRepo_AppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewFlujoRepo()
	t0 := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, correos.FlujoCorreo{ID: "f2", CorreoID: "c1", FechaInicio: t0.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, correos.FlujoCorreo{ID: "f1", CorreoID: "c1", FechaInicio: t0}))
	require.NoError(t, repo.Create(ctx, correos.FlujoCorreo{ID: "x", CorreoID: "c2", FechaInicio: t0}))

	require.NoError(t, repo.Cerrar(ctx, "f1", t0.Add(time.Hour), 1))
	assert.ErrorIs(t, repo.Cerrar(ctx, "f1", t0.Add(2*time.Hour), 2), correos.ErrFlujoCerrado)

	fs, err := repo.ListByCorreo(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, "f1", fs[0].ID)
	assert.Equal(t, 1.0, fs[0].DuracionHoras)
	assert.True(t, fs[1].Abierto())
}

func TestLecturasRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewLecturasRepo()

	require.NoError(t, repo.Marcar(ctx, "u1", "a", "b"))
	require.NoError(t, repo.Marcar(ctx, "u1", "a"))

	got, err := repo.Leidas(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a": true, "b": true}, got)

	got, err = repo.Leidas(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, got)
}
