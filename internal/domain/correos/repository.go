package correos

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c Correo) error
	Update(ctx context.Context, c Correo) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Correo, error)
	List(ctx context.Context) ([]Correo, error)
}

// FlujoRepository es append-only: Cerrar fija FechaFin una sola vez (ErrFlujoCerrado si ya estaba).
type FlujoRepository interface {
	Create(ctx context.Context, f FlujoCorreo) error
	Cerrar(ctx context.Context, id string, fin time.Time, duracionHoras float64) error
	ListByCorreo(ctx context.Context, correoID string) ([]FlujoCorreo, error)
	List(ctx context.Context) ([]FlujoCorreo, error)
}
