package entidades

import "context"

type Repository interface {
	Create(ctx context.Context, e Entidad) error
	Update(ctx context.Context, e Entidad) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Entidad, error)
	List(ctx context.Context) ([]Entidad, error)
}
