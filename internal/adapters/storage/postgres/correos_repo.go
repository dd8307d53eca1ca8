package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gestion-correos/internal/domain/correos"
)

type CorreosRepo struct {
	db *sql.DB
}

func NewCorreosRepo(db *sql.DB) *CorreosRepo {
	return &CorreosRepo{db: db}
}

func (r *CorreosRepo) Create(ctx context.Context, c correos.Correo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO correos (
			id, radicado, radicado_salida,
			asunto, remitente, descripcion,
			entidad_id, tipo_solicitud_id, gestor_id,
			estado,
			fecha_recepcion, fecha_vencimiento, fecha_cierre,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		c.ID, c.Radicado, c.RadicadoSalida,
		c.Asunto, c.Remitente, c.Descripcion,
		c.EntidadID, c.TipoSolicitudID, c.GestorID,
		string(c.Estado),
		c.FechaRecepcion, c.FechaVencimiento, nullTime(c.FechaCierre),
		c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return correos.ErrRadicadoDuplicado
	}
	return err
}

// Update no toca radicado, referencias de catálogo ni fechas de creación.
func (r *CorreosRepo) Update(ctx context.Context, c correos.Correo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE correos
		SET
			radicado_salida = $2,
			asunto = $3,
			remitente = $4,
			descripcion = $5,
			gestor_id = $6,
			estado = $7,
			fecha_cierre = $8,
			updated_at = $9
		WHERE id = $1
	`,
		c.ID,
		c.RadicadoSalida,
		c.Asunto,
		c.Remitente,
		c.Descripcion,
		c.GestorID,
		string(c.Estado),
		nullTime(c.FechaCierre),
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, correos.ErrNotFound)
}

func (r *CorreosRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM correos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, correos.ErrNotFound)
}

const correoCols = `
	id, radicado, radicado_salida,
	asunto, remitente, descripcion,
	entidad_id, tipo_solicitud_id, gestor_id,
	estado,
	fecha_recepcion, fecha_vencimiento, fecha_cierre,
	created_at, updated_at`

func scanCorreo(s interface{ Scan(...any) error }) (correos.Correo, error) {
	var c correos.Correo
	var estado string
	var cierre sql.NullTime
	if err := s.Scan(
		&c.ID, &c.Radicado, &c.RadicadoSalida,
		&c.Asunto, &c.Remitente, &c.Descripcion,
		&c.EntidadID, &c.TipoSolicitudID, &c.GestorID,
		&estado,
		&c.FechaRecepcion, &c.FechaVencimiento, &cierre,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return correos.Correo{}, err
	}
	c.Estado = correos.Estado(estado)
	c.FechaCierre = timePtr(cierre)
	return c, nil
}

func (r *CorreosRepo) GetByID(ctx context.Context, id string) (correos.Correo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return correos.Correo{}, correos.ErrNotFound
	}
	c, err := scanCorreo(r.db.QueryRowContext(ctx, `SELECT `+correoCols+` FROM correos WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return correos.Correo{}, correos.ErrNotFound
	}
	return c, err
}

func (r *CorreosRepo) List(ctx context.Context) ([]correos.Correo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+correoCols+` FROM correos ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]correos.Correo, 0)
	for rows.Next() {
		c, err := scanCorreo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type FlujosRepo struct {
	db *sql.DB
}

func NewFlujosRepo(db *sql.DB) *FlujosRepo {
	return &FlujosRepo{db: db}
}

func (r *FlujosRepo) Create(ctx context.Context, f correos.FlujoCorreo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO flujos_correo (id, correo_id, etapa, usuario_id, fecha_inicio, fecha_fin, duracion_horas, comentario)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, f.ID, f.CorreoID, string(f.Etapa), f.UsuarioID, f.FechaInicio, nullTime(f.FechaFin), f.DuracionHoras, f.Comentario)
	return err
}

// Cerrar solo actualiza filas abiertas; una fila cerrada no se vuelve a escribir.
func (r *FlujosRepo) Cerrar(ctx context.Context, id string, fin time.Time, duracionHoras float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE flujos_correo
		SET fecha_fin = $2, duracion_horas = $3
		WHERE id = $1 AND fecha_fin IS NULL
	`, id, fin, duracionHoras)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var existe bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM flujos_correo WHERE id = $1)`, id).Scan(&existe); err != nil {
		return err
	}
	if existe {
		return correos.ErrFlujoCerrado
	}
	return correos.ErrNotFound
}

const flujoCols = `id, correo_id, etapa, usuario_id, fecha_inicio, fecha_fin, duracion_horas, comentario`

func (r *FlujosRepo) ListByCorreo(ctx context.Context, correoID string) ([]correos.FlujoCorreo, error) {
	return r.query(ctx, `SELECT `+flujoCols+` FROM flujos_correo WHERE correo_id = $1 ORDER BY fecha_inicio ASC, id ASC`, correoID)
}

func (r *FlujosRepo) List(ctx context.Context) ([]correos.FlujoCorreo, error) {
	return r.query(ctx, `SELECT `+flujoCols+` FROM flujos_correo ORDER BY fecha_inicio ASC, id ASC`)
}

func (r *FlujosRepo) query(ctx context.Context, q string, args ...any) ([]correos.FlujoCorreo, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]correos.FlujoCorreo, 0)
	for rows.Next() {
		var f correos.FlujoCorreo
		var etapa string
		var fin sql.NullTime
		if err := rows.Scan(&f.ID, &f.CorreoID, &etapa, &f.UsuarioID, &f.FechaInicio, &fin, &f.DuracionHoras, &f.Comentario); err != nil {
			return nil, err
		}
		f.Etapa = correos.Estado(etapa)
		f.FechaFin = timePtr(fin)
		out = append(out, f)
	}
	return out, rows.Err()
}
