package usuarios

import "context"

type Repository interface {
	Create(ctx context.Context, u Usuario) error
	Update(ctx context.Context, u Usuario) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Usuario, error)
	List(ctx context.Context) ([]Usuario, error)
}
