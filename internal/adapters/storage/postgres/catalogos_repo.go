package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"
)

type UsuariosRepo struct {
	db *sql.DB
}

func NewUsuariosRepo(db *sql.DB) *UsuariosRepo {
	return &UsuariosRepo{db: db}
}

func (r *UsuariosRepo) Create(ctx context.Context, u usuarios.Usuario) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usuarios (id, nombre, email, rol, activo, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, u.ID, u.Nombre, u.Email, string(u.Rol), u.Activo, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *UsuariosRepo) Update(ctx context.Context, u usuarios.Usuario) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE usuarios
		SET nombre = $2, email = $3, rol = $4, activo = $5, updated_at = $6
		WHERE id = $1
	`, u.ID, u.Nombre, u.Email, string(u.Rol), u.Activo, u.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffected(res, usuarios.ErrNotFound)
}

func (r *UsuariosRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, usuarios.ErrNotFound)
}

const usuarioCols = `id, nombre, email, rol, activo, created_at, updated_at`

func scanUsuario(s interface{ Scan(...any) error }) (usuarios.Usuario, error) {
	var u usuarios.Usuario
	var rol string
	if err := s.Scan(&u.ID, &u.Nombre, &u.Email, &rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return usuarios.Usuario{}, err
	}
	u.Rol = usuarios.Rol(rol)
	return u, nil
}

func (r *UsuariosRepo) GetByID(ctx context.Context, id string) (usuarios.Usuario, error) {
	if strings.TrimSpace(id) == "" {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}
	u, err := scanUsuario(r.db.QueryRowContext(ctx, `SELECT `+usuarioCols+` FROM usuarios WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}
	return u, err
}

func (r *UsuariosRepo) List(ctx context.Context) ([]usuarios.Usuario, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+usuarioCols+` FROM usuarios ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]usuarios.Usuario, 0)
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type EntidadesRepo struct {
	db *sql.DB
}

func NewEntidadesRepo(db *sql.DB) *EntidadesRepo {
	return &EntidadesRepo{db: db}
}

// dominios viaja como texto separado por comas; un dominio nunca lleva coma.
func (r *EntidadesRepo) Create(ctx context.Context, e entidades.Entidad) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entidades (id, nombre, dominios, responsable_id, activa, created_at, updated_at)
		VALUES ($1, $2, string_to_array($3, ','), $4, $5, $6, $7)
	`, e.ID, e.Nombre, strings.Join(e.Dominios, ","), e.ResponsableID, e.Activa, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *EntidadesRepo) Update(ctx context.Context, e entidades.Entidad) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE entidades
		SET nombre = $2, dominios = string_to_array($3, ','), responsable_id = $4, activa = $5, updated_at = $6
		WHERE id = $1
	`, e.ID, e.Nombre, strings.Join(e.Dominios, ","), e.ResponsableID, e.Activa, e.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffected(res, entidades.ErrNotFound)
}

func (r *EntidadesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entidades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, entidades.ErrNotFound)
}

const entidadCols = `id, nombre, array_to_string(dominios, ','), responsable_id, activa, created_at, updated_at`

func scanEntidad(s interface{ Scan(...any) error }) (entidades.Entidad, error) {
	var e entidades.Entidad
	var doms string
	if err := s.Scan(&e.ID, &e.Nombre, &doms, &e.ResponsableID, &e.Activa, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return entidades.Entidad{}, err
	}
	e.Dominios = strings.Split(doms, ",")
	return e, nil
}

func (r *EntidadesRepo) GetByID(ctx context.Context, id string) (entidades.Entidad, error) {
	if strings.TrimSpace(id) == "" {
		return entidades.Entidad{}, entidades.ErrNotFound
	}
	e, err := scanEntidad(r.db.QueryRowContext(ctx, `SELECT `+entidadCols+` FROM entidades WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entidades.Entidad{}, entidades.ErrNotFound
	}
	return e, err
}

func (r *EntidadesRepo) List(ctx context.Context) ([]entidades.Entidad, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+entidadCols+` FROM entidades ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entidades.Entidad, 0)
	for rows.Next() {
		e, err := scanEntidad(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type TiposRepo struct {
	db *sql.DB
}

func NewTiposRepo(db *sql.DB) *TiposRepo {
	return &TiposRepo{db: db}
}

func (r *TiposRepo) Create(ctx context.Context, t tipos.TipoSolicitud) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tipos_solicitud (id, nombre, plazo_dias, urgencia, activo, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, t.ID, t.Nombre, t.PlazoDias, string(t.Urgencia), t.Activo, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TiposRepo) Update(ctx context.Context, t tipos.TipoSolicitud) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tipos_solicitud
		SET nombre = $2, plazo_dias = $3, urgencia = $4, activo = $5, updated_at = $6
		WHERE id = $1
	`, t.ID, t.Nombre, t.PlazoDias, string(t.Urgencia), t.Activo, t.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffected(res, tipos.ErrNotFound)
}

func (r *TiposRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tipos_solicitud WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, tipos.ErrNotFound)
}

const tipoCols = `id, nombre, plazo_dias, urgencia, activo, created_at, updated_at`

func scanTipo(s interface{ Scan(...any) error }) (tipos.TipoSolicitud, error) {
	var t tipos.TipoSolicitud
	var urg string
	if err := s.Scan(&t.ID, &t.Nombre, &t.PlazoDias, &urg, &t.Activo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return tipos.TipoSolicitud{}, err
	}
	t.Urgencia = tipos.Urgencia(urg)
	return t, nil
}

func (r *TiposRepo) GetByID(ctx context.Context, id string) (tipos.TipoSolicitud, error) {
	if strings.TrimSpace(id) == "" {
		return tipos.TipoSolicitud{}, tipos.ErrNotFound
	}
	t, err := scanTipo(r.db.QueryRowContext(ctx, `SELECT `+tipoCols+` FROM tipos_solicitud WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return tipos.TipoSolicitud{}, tipos.ErrNotFound
	}
	return t, err
}

func (r *TiposRepo) List(ctx context.Context) ([]tipos.TipoSolicitud, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tipoCols+` FROM tipos_solicitud ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tipos.TipoSolicitud, 0)
	for rows.Next() {
		t, err := scanTipo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
