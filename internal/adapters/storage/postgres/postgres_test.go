package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gestion-correos/internal/domain/correos"
	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startDB levanta postgres:16, aplica migraciones y devuelve el pool pgx.
// Se salta con -short o si no hay Docker.
func startDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test: skipped with -short")
	}
	ctx := context.Background()

	var (
		pgC *tcpostgres.PostgresContainer
		err error
	)
	func() {
		// testcontainers hace panic si no encuentra un docker host
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("docker not available: %v", r)
			}
		}()
		pgC, err = tcpostgres.Run(ctx,
			"postgres:16",
			tcpostgres.WithDatabase("correos"),
			tcpostgres.WithUsername("test"),
			tcpostgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
	}()
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, Migrate(dsn))
	// idempotente: la segunda pasada es ErrNoChange
	require.NoError(t, Migrate(dsn))

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgres_Catalogos(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	us := NewUsuariosRepo(db)
	require.NoError(t, us.Create(ctx, usuarios.Usuario{ID: "u1", Nombre: "Ana", Rol: usuarios.RolGestor, Activo: true, CreatedAt: now, UpdatedAt: now}))
	u, err := us.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, usuarios.RolGestor, u.Rol)
	_, err = us.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, usuarios.ErrNotFound)

	es := NewEntidadesRepo(db)
	require.NoError(t, es.Create(ctx, entidades.Entidad{
		ID: "e1", Nombre: "INS", Dominios: []string{"ins.gov.co", "minsalud.gov.co"}, Activa: true, CreatedAt: now, UpdatedAt: now,
	}))
	e, err := es.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ins.gov.co", "minsalud.gov.co"}, e.Dominios)

	e.Activa = false
	require.NoError(t, es.Update(ctx, e))
	list, err := es.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Activa)

	ts := NewTiposRepo(db)
	require.NoError(t, ts.Create(ctx, tipos.TipoSolicitud{ID: "t1", Nombre: "Tutela", PlazoDias: 3, Urgencia: tipos.UrgenciaAlta, Activo: true, CreatedAt: now, UpdatedAt: now}))
	assert.Error(t, ts.Create(ctx, tipos.TipoSolicitud{ID: "t2", Nombre: "x", PlazoDias: 400, Urgencia: tipos.UrgenciaAlta, CreatedAt: now, UpdatedAt: now}))
	assert.ErrorIs(t, ts.Delete(ctx, "t2"), tipos.ErrNotFound)
}

func TestPostgres_CorreosYFlujos(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	cs := NewCorreosRepo(db)
	c := correos.Correo{
		ID: "c1", Radicado: "E-20250601-AAAA", Asunto: "x", Remitente: "a@ins.gov.co",
		EntidadID: "e1", TipoSolicitudID: "t1", Estado: correos.EstadoRecepcion,
		FechaRecepcion: now, FechaVencimiento: now.AddDate(0, 0, 3), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, cs.Create(ctx, c))

	dup := c
	dup.ID = "c2"
	dup.Radicado = "e-20250601-aaaa"
	assert.ErrorIs(t, cs.Create(ctx, dup), correos.ErrRadicadoDuplicado)

	cierre := now.Add(48 * time.Hour)
	c.Estado = correos.EstadoEnviado
	c.RadicadoSalida = "S-1"
	c.FechaCierre = &cierre
	require.NoError(t, cs.Update(ctx, c))

	got, err := cs.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, correos.EstadoEnviado, got.Estado)
	require.NotNil(t, got.FechaCierre)
	assert.True(t, cierre.Equal(*got.FechaCierre))

	fs := NewFlujosRepo(db)
	require.NoError(t, fs.Create(ctx, correos.FlujoCorreo{ID: "f1", CorreoID: "c1", Etapa: correos.EstadoRecepcion, UsuarioID: "u1", FechaInicio: now}))
	require.NoError(t, fs.Cerrar(ctx, "f1", now.Add(time.Hour), 1))
	assert.ErrorIs(t, fs.Cerrar(ctx, "f1", now.Add(2*time.Hour), 2), correos.ErrFlujoCerrado)
	assert.ErrorIs(t, fs.Cerrar(ctx, "nope", now, 0), correos.ErrNotFound)

	rows, err := fs.ListByCorreo(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].DuracionHoras)

	require.NoError(t, cs.Delete(ctx, "c1"))
	assert.ErrorIs(t, cs.Delete(ctx, "c1"), correos.ErrNotFound)
}

func TestPostgres_Lecturas(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	repo := NewLecturasRepo(db)
	require.NoError(t, repo.Marcar(ctx, "u1", "RECEPCION:c1", "SISTEMA:resumen:2025-06-01"))
	require.NoError(t, repo.Marcar(ctx, "u1", "RECEPCION:c1"))

	got, err := repo.Leidas(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, got["RECEPCION:c1"])
}
