package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

type LecturasRepo struct {
	db *sql.DB
}

func NewLecturasRepo(db *sql.DB) *LecturasRepo {
	return &LecturasRepo{db: db}
}

func (r *LecturasRepo) Marcar(ctx context.Context, usuarioID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notificacion_lecturas (usuario_id, notificacion_id)
		VALUES ($1, $2)
		ON CONFLICT (usuario_id, notificacion_id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, usuarioID, id); err != nil {
			return fmt.Errorf("marcar %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (r *LecturasRepo) Leidas(ctx context.Context, usuarioID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT notificacion_id FROM notificacion_lecturas WHERE usuario_id = $1`, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
