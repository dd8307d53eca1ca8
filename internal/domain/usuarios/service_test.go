package usuarios

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Usuario
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Usuario{}}
}

func (r *testRepo) Create(ctx context.Context, u Usuario) error {
	if _, ok := r.byID[u.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u Usuario) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Usuario, error) {
	u, ok := r.byID[id]
	if !ok {
		return Usuario{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) List(ctx context.Context) ([]Usuario, error) {
	out := make([]Usuario, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestParseRol(t *testing.T) {
	r, ok := ParseRol("role_gestor")
	require.True(t, ok)
	assert.Equal(t, RolGestor, r)
	assert.Equal(t, "ROLE_GESTOR", r.Token())

	_, ok = ParseRol("JEFE")
	assert.False(t, ok)
}

func TestService_Create(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.Create(context.Background(), CreateInput{
		Nombre: "  Ana Gómez ",
		Email:  "Ana@Entidad.GOV.co",
		Rol:    "gestor",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ana Gómez", u.Nombre)
	assert.Equal(t, "ana@entidad.gov.co", u.Email)
	assert.Equal(t, RolGestor, u.Rol)
	assert.True(t, u.Activo)
	assert.Equal(t, now, u.CreatedAt)
}

func TestService_Create_Invalid(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), CreateInput{Nombre: "", Rol: RolAdmin})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateInput{Nombre: "x", Rol: "JEFE"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_Partial(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), CreateInput{ID: "u-1", Nombre: "Luis", Rol: RolRevisor})
	require.NoError(t, err)

	later := u.CreatedAt.Add(time.Hour)
	svc.now = func() time.Time { return later }

	activo := false
	rol := RolAprobador
	got, err := svc.Update(context.Background(), "u-1", UpdateInput{Activo: &activo, Rol: &rol})
	require.NoError(t, err)
	assert.Equal(t, "Luis", got.Nombre)
	assert.Equal(t, RolAprobador, got.Rol)
	assert.False(t, got.Activo)
	assert.Equal(t, later, got.UpdatedAt)

	_, err = svc.Update(context.Background(), "nope", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.Create(context.Background(), CreateInput{ID: "u-1", Nombre: "Luis", Rol: RolRevisor})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "u-1"))
	_, err = svc.GetByID(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), " "), ErrInvalidInput)
}
