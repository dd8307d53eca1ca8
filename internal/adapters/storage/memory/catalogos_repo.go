package memory

import (
	"context"

	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"
)

type usuarioRepo struct{ t *table[usuarios.Usuario] }

func NewUsuarioRepo() usuarios.Repository {
	return &usuarioRepo{t: newTable(
		func(u usuarios.Usuario) string { return u.ID },
		func(a, b usuarios.Usuario) int { return a.CreatedAt.Compare(b.CreatedAt) },
		usuarios.ErrNotFound,
	)}
}

func (r *usuarioRepo) Create(ctx context.Context, u usuarios.Usuario) error { return r.t.create(u) }
func (r *usuarioRepo) Update(ctx context.Context, u usuarios.Usuario) error { return r.t.update(u) }
func (r *usuarioRepo) Delete(ctx context.Context, id string) error          { return r.t.delete(id) }
func (r *usuarioRepo) GetByID(ctx context.Context, id string) (usuarios.Usuario, error) {
	return r.t.get(id)
}
func (r *usuarioRepo) List(ctx context.Context) ([]usuarios.Usuario, error) {
	return r.t.list(nil), nil
}

type entidadRepo struct{ t *table[entidades.Entidad] }

func NewEntidadRepo() entidades.Repository {
	return &entidadRepo{t: newTable(
		func(e entidades.Entidad) string { return e.ID },
		func(a, b entidades.Entidad) int { return a.CreatedAt.Compare(b.CreatedAt) },
		entidades.ErrNotFound,
	)}
}

// Dominios es un slice: se copia para que el caller no comparta el backing array.
func (r *entidadRepo) Create(ctx context.Context, e entidades.Entidad) error {
	e.Dominios = append([]string(nil), e.Dominios...)
	return r.t.create(e)
}

func (r *entidadRepo) Update(ctx context.Context, e entidades.Entidad) error {
	e.Dominios = append([]string(nil), e.Dominios...)
	return r.t.update(e)
}

func (r *entidadRepo) Delete(ctx context.Context, id string) error { return r.t.delete(id) }
func (r *entidadRepo) GetByID(ctx context.Context, id string) (entidades.Entidad, error) {
	return r.t.get(id)
}
func (r *entidadRepo) List(ctx context.Context) ([]entidades.Entidad, error) {
	return r.t.list(nil), nil
}

type tipoRepo struct{ t *table[tipos.TipoSolicitud] }

func NewTipoRepo() tipos.Repository {
	return &tipoRepo{t: newTable(
		func(t tipos.TipoSolicitud) string { return t.ID },
		func(a, b tipos.TipoSolicitud) int { return a.CreatedAt.Compare(b.CreatedAt) },
		tipos.ErrNotFound,
	)}
}

func (r *tipoRepo) Create(ctx context.Context, t tipos.TipoSolicitud) error { return r.t.create(t) }
func (r *tipoRepo) Update(ctx context.Context, t tipos.TipoSolicitud) error { return r.t.update(t) }
func (r *tipoRepo) Delete(ctx context.Context, id string) error             { return r.t.delete(id) }
func (r *tipoRepo) GetByID(ctx context.Context, id string) (tipos.TipoSolicitud, error) {
	return r.t.get(id)
}
func (r *tipoRepo) List(ctx context.Context) ([]tipos.TipoSolicitud, error) {
	return r.t.list(nil), nil
}
