package notificaciones

import (
	"context"
	"errors"
	"strings"
	"time"

	"gestion-correos/internal/domain/correos"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notificacion not found")
)

type Loader interface {
	Load(ctx context.Context, now time.Time) (correos.Snapshot, error)
}

type Service struct {
	loader   Loader
	lecturas LecturasRepository
	now      func() time.Time
}

func NewService(loader Loader, lecturas LecturasRepository) *Service {
	return &Service{
		loader:   loader,
		lecturas: lecturas,
		now:      time.Now,
	}
}

// Listar deriva las notificaciones del usuario y aplica sus marcas de leída.
func (s *Service) Listar(ctx context.Context, usuarioID string, soloNoLeidas bool) ([]Notificacion, error) {
	usuarioID = strings.TrimSpace(usuarioID)
	if usuarioID == "" {
		return nil, ErrInvalidInput
	}

	snap, err := s.loader.Load(ctx, s.now())
	if err != nil {
		return nil, err
	}
	all, err := Derivar(snap)
	if err != nil {
		return nil, err
	}
	leidas, err := s.lecturas.Leidas(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	mine := ParaUsuario(all, usuarioID)
	out := mine[:0]
	for _, n := range mine {
		if leidas[n.ID] {
			n.Leida = true
		}
		if soloNoLeidas && n.Leida {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Service) ContarNoLeidas(ctx context.Context, usuarioID string) (int, error) {
	items, err := s.Listar(ctx, usuarioID, true)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// MarcarLeida solo acepta ids que el usuario ve hoy.
func (s *Service) MarcarLeida(ctx context.Context, usuarioID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	items, err := s.Listar(ctx, usuarioID, false)
	if err != nil {
		return err
	}
	for _, n := range items {
		if n.ID == id {
			return s.lecturas.Marcar(ctx, usuarioID, id)
		}
	}
	return ErrNotFound
}

// MarcarTodasLeidas devuelve cuántas quedaron marcadas.
func (s *Service) MarcarTodasLeidas(ctx context.Context, usuarioID string) (int, error) {
	items, err := s.Listar(ctx, usuarioID, true)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	if err := s.lecturas.Marcar(ctx, usuarioID, ids...); err != nil {
		return 0, err
	}
	return len(ids), nil
}
