package tipos

import "context"

type Repository interface {
	Create(ctx context.Context, t TipoSolicitud) error
	Update(ctx context.Context, t TipoSolicitud) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (TipoSolicitud, error)
	List(ctx context.Context) ([]TipoSolicitud, error)
}
