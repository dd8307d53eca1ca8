package metricas

import (
	"context"
	"time"

	"gestion-correos/internal/domain/correos"
)

// Loader entrega un snapshot consistente del store.
type Loader interface {
	Load(ctx context.Context, now time.Time) (correos.Snapshot, error)
}

type Service struct {
	loader Loader
	meses  int
	now    func() time.Time
}

// NewService: meses es la ventana por defecto de la tendencia.
func NewService(loader Loader, meses int) *Service {
	if meses <= 0 {
		meses = MesesDefault
	}
	return &Service{
		loader: loader,
		meses:  meses,
		now:    time.Now,
	}
}

func (s *Service) Calcular(ctx context.Context, filtro correos.Filtro, meses int) (DashboardMetrics, error) {
	if meses <= 0 {
		meses = s.meses
	}
	snap, err := s.loader.Load(ctx, s.now())
	if err != nil {
		return DashboardMetrics{}, err
	}
	return Agregar(snap, filtro, meses)
}
