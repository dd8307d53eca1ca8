package notificaciones

import "context"

// LecturasRepository guarda qué notificaciones marcó cada usuario como leídas.
type LecturasRepository interface {
	Marcar(ctx context.Context, usuarioID string, ids ...string) error
	Leidas(ctx context.Context, usuarioID string) (map[string]bool, error)
}
