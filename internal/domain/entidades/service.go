package entidades

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("entidad not found")
	ErrEnUso        = errors.New("entidad en uso por correos; desactívela con activa=false")
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
	ID            string // opcional
	Nombre        string
	Dominios      []string
	ResponsableID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Entidad, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return Entidad{}, ErrInvalidInput
	}
	doms := NormalizeDominios(in.Dominios)
	if len(doms) == 0 {
		return Entidad{}, ErrInvalidInput
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	e := Entidad{
		ID:            id,
		Nombre:        strings.TrimSpace(in.Nombre),
		Dominios:      doms,
		ResponsableID: strings.TrimSpace(in.ResponsableID),
		Activa:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entidad{}, err
	}
	return e, nil
}

type UpdateInput struct {
	Nombre        *string
	Dominios      *[]string
	ResponsableID *string
	Activa        *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Entidad, error) {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Entidad{}, err
	}

	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return Entidad{}, ErrInvalidInput
		}
		e.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Dominios != nil {
		doms := NormalizeDominios(*in.Dominios)
		if len(doms) == 0 {
			return Entidad{}, ErrInvalidInput
		}
		e.Dominios = doms
	}
	if in.ResponsableID != nil {
		e.ResponsableID = strings.TrimSpace(*in.ResponsableID)
	}
	if in.Activa != nil {
		e.Activa = *in.Activa
	}
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return Entidad{}, err
	}
	return e, nil
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

func (s *Service) GetByID(ctx context.Context, id string) (Entidad, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entidad{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Entidad, error) {
	return s.repo.List(ctx)
}

// NormalizeDominios: minúsculas, sin "@" inicial, sin vacíos ni repetidos, ordenados.
func NormalizeDominios(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		d := strings.ToLower(strings.TrimSpace(raw))
		d = strings.TrimPrefix(d, "@")
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
