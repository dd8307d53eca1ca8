package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"gestion-correos/internal/domain/correos"
)

type correoRepo struct {
	t *table[correos.Correo]

	// radicados en uso; mismo criterio que el índice único de postgres
	mu        sync.Mutex
	radicados map[string]string
}

func NewCorreoRepo() correos.Repository {
	return &correoRepo{
		t: newTable(
			func(c correos.Correo) string { return c.ID },
			func(a, b correos.Correo) int { return a.CreatedAt.Compare(b.CreatedAt) },
			correos.ErrNotFound,
		),
		radicados: map[string]string{},
	}
}

func (r *correoRepo) Create(ctx context.Context, c correos.Correo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToUpper(c.Radicado)
	if _, used := r.radicados[key]; used {
		return correos.ErrRadicadoDuplicado
	}
	if err := r.t.create(c); err != nil {
		return err
	}
	r.radicados[key] = c.ID
	return nil
}

func (r *correoRepo) Update(ctx context.Context, c correos.Correo) error {
	return r.t.update(c)
}

func (r *correoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.t.get(id)
	if err != nil {
		return err
	}
	if err := r.t.delete(id); err != nil {
		return err
	}
	delete(r.radicados, strings.ToUpper(c.Radicado))
	return nil
}

func (r *correoRepo) GetByID(ctx context.Context, id string) (correos.Correo, error) {
	return r.t.get(id)
}

func (r *correoRepo) List(ctx context.Context) ([]correos.Correo, error) {
	return r.t.list(nil), nil
}

type flujoRepo struct {
	t *table[correos.FlujoCorreo]
}

func NewFlujoRepo() correos.FlujoRepository {
	return &flujoRepo{t: newTable(
		func(f correos.FlujoCorreo) string { return f.ID },
		func(a, b correos.FlujoCorreo) int { return a.FechaInicio.Compare(b.FechaInicio) },
		correos.ErrNotFound,
	)}
}

func (r *flujoRepo) Create(ctx context.Context, f correos.FlujoCorreo) error {
	return r.t.create(f)
}

func (r *flujoRepo) Cerrar(ctx context.Context, id string, fin time.Time, duracionHoras float64) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	f, ok := r.t.byID[id]
	if !ok {
		return correos.ErrNotFound
	}
	if f.FechaFin != nil {
		return correos.ErrFlujoCerrado
	}
	f.FechaFin = &fin
	f.DuracionHoras = duracionHoras
	r.t.byID[id] = f
	return nil
}

func (r *flujoRepo) ListByCorreo(ctx context.Context, correoID string) ([]correos.FlujoCorreo, error) {
	return r.t.list(func(f correos.FlujoCorreo) bool { return f.CorreoID == correoID }), nil
}

func (r *flujoRepo) List(ctx context.Context) ([]correos.FlujoCorreo, error) {
	return r.t.list(nil), nil
}
