package tipos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("tipo de solicitud not found")
	ErrEnUso        = errors.New("tipo de solicitud en uso por correos; desactívelo con activo=false")
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
	ID        string
	Nombre    string
	PlazoDias int
	Urgencia  Urgencia // vacío => MEDIA
}

func (s *Service) Create(ctx context.Context, in CreateInput) (TipoSolicitud, error) {
	if strings.TrimSpace(in.Nombre) == "" || !PlazoValido(in.PlazoDias) {
		return TipoSolicitud{}, ErrInvalidInput
	}
	urg := UrgenciaMedia
	if strings.TrimSpace(string(in.Urgencia)) != "" {
		u, ok := ParseUrgencia(string(in.Urgencia))
		if !ok {
			return TipoSolicitud{}, ErrInvalidInput
		}
		urg = u
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	t := TipoSolicitud{
		ID:        id,
		Nombre:    strings.TrimSpace(in.Nombre),
		PlazoDias: in.PlazoDias,
		Urgencia:  urg,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return TipoSolicitud{}, err
	}
	return t, nil
}

type UpdateInput struct {
	Nombre    *string
	PlazoDias *int
	Urgencia  *Urgencia
	Activo    *bool
}

// Update no recalcula vencimientos ya fijados; el SLA de consulta sí usa el plazo vigente.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (TipoSolicitud, error) {
	t, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return TipoSolicitud{}, err
	}

	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return TipoSolicitud{}, ErrInvalidInput
		}
		t.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.PlazoDias != nil {
		if !PlazoValido(*in.PlazoDias) {
			return TipoSolicitud{}, ErrInvalidInput
		}
		t.PlazoDias = *in.PlazoDias
	}
	if in.Urgencia != nil {
		u, ok := ParseUrgencia(string(*in.Urgencia))
		if !ok {
			return TipoSolicitud{}, ErrInvalidInput
		}
		t.Urgencia = u
	}
	if in.Activo != nil {
		t.Activo = *in.Activo
	}
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return TipoSolicitud{}, err
	}
	return t, nil
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

func (s *Service) GetByID(ctx context.Context, id string) (TipoSolicitud, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TipoSolicitud{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]TipoSolicitud, error) {
	return s.repo.List(ctx)
}
