package memory

import (
	"context"
	"sync"

	"gestion-correos/internal/domain/notificaciones"
)

type lecturasRepo struct {
	mu     sync.RWMutex
	byUser map[string]map[string]bool
}

func NewLecturasRepo() notificaciones.LecturasRepository {
	return &lecturasRepo{byUser: map[string]map[string]bool{}}
}

func (r *lecturasRepo) Marcar(ctx context.Context, usuarioID string, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.byUser[usuarioID]
	if m == nil {
		m = map[string]bool{}
		r.byUser[usuarioID] = m
	}
	for _, id := range ids {
		m[id] = true
	}
	return nil
}

func (r *lecturasRepo) Leidas(ctx context.Context, usuarioID string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]bool, len(r.byUser[usuarioID]))
	for id := range r.byUser[usuarioID] {
		out[id] = true
	}
	return out, nil
}
