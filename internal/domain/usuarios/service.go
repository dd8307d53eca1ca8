package usuarios

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("usuario not found")
	ErrEnUso        = errors.New("usuario en uso por correos; desactívelo con activo=false")
)

// Referencias responde si otro módulo apunta al registro; nil = sin chequeo.
type Referencias interface {
	Referenciado(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
	refs Referencias
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// ConReferencias activa el chequeo de uso antes de Delete.
func (s *Service) ConReferencias(r Referencias) *Service {
	s.refs = r
	return s
}

type CreateInput struct {
	ID     string // opcional; fixtures usan ids estables
	Nombre string
	Email  string
	Rol    Rol
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Usuario, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return Usuario{}, ErrInvalidInput
	}
	rol, ok := ParseRol(string(in.Rol))
	if !ok {
		return Usuario{}, ErrInvalidInput
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	u := Usuario{
		ID:        id,
		Nombre:    strings.TrimSpace(in.Nombre),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Rol:       rol,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return Usuario{}, err
	}
	return u, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Nombre *string
	Email  *string
	Rol    *Rol
	Activo *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Usuario, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Usuario{}, err
	}

	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return Usuario{}, ErrInvalidInput
		}
		u.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Rol != nil {
		rol, ok := ParseRol(string(*in.Rol))
		if !ok {
			return Usuario{}, ErrInvalidInput
		}
		u.Rol = rol
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return Usuario{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if s.refs != nil {
		enUso, err := s.refs.Referenciado(ctx, id)
		if err != nil {
			return err
		}
		if enUso {
			return ErrEnUso
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Usuario, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Usuario{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Usuario, error) {
	return s.repo.List(ctx)
}
