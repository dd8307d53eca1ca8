package correos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testCatalogo() Catalogo {
	return NewCatalogo(
		[]entidades.Entidad{
			{ID: "ent-salud", Nombre: "Ministerio de Salud", Dominios: []string{"minsalud.gov.co"}, ResponsableID: "u-gestor", Activa: true},
			{ID: "ent-ins", Nombre: "Instituto Nacional de Salud", Dominios: []string{"ins.gov.co"}, Activa: true},
		},
		[]tipos.TipoSolicitud{
			{ID: "tutela", Nombre: "Tutela", PlazoDias: 3, Urgencia: tipos.UrgenciaAlta, Activo: true},
			{ID: "peticion", Nombre: "Derecho de petición", PlazoDias: 15, Urgencia: tipos.UrgenciaMedia, Activo: true},
		},
		[]usuarios.Usuario{
			{ID: "u-gestor", Nombre: "Ana Gestora", Rol: usuarios.RolGestor, Activo: true},
			{ID: "u-gestor2", Nombre: "Beto Gestor", Rol: usuarios.RolGestor, Activo: true},
			{ID: "u-revisor", Nombre: "Rita Revisora", Rol: usuarios.RolRevisor, Activo: true},
		},
	)
}

// fixture50 arma 50 correos rotando los 7 estados; recepciones separadas por horas.
func fixture50() Snapshot {
	cs := make([]Correo, 0, 50)
	for i := 0; i < 50; i++ {
		est := Estados[i%len(Estados)]
		rec := testNow.Add(-time.Duration(i*7) * time.Hour)
		c := Correo{
			ID:              fmt.Sprintf("c-%02d", i),
			Radicado:        fmt.Sprintf("E-2025-%04d", i),
			Asunto:          fmt.Sprintf("Asunto %02d", i),
			Remitente:       "contacto@minsalud.gov.co",
			EntidadID:       "ent-salud",
			TipoSolicitudID: "peticion",
			Estado:          est,
			FechaRecepcion:  rec,
			CreatedAt:       rec,
			UpdatedAt:       rec,
		}
		if i%2 == 0 {
			c.EntidadID = "ent-ins"
			c.Remitente = "radicacion@ins.gov.co"
		}
		if est != EstadoRecepcion {
			c.GestorID = "u-gestor"
		}
		cs = append(cs, c)
	}
	return Snapshot{Correos: cs, Catalogo: testCatalogo(), Now: testNow}
}

// -------------------------
// Test repos (in-memory)
// -------------------------

type testCorreos struct {
	mu   sync.Mutex
	byID map[string]Correo
}

func (r *testCorreos) Create(ctx context.Context, c Correo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *testCorreos) Update(ctx context.Context, c Correo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testCorreos) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testCorreos) GetByID(ctx context.Context, id string) (Correo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return Correo{}, ErrNotFound
	}
	return c, nil
}

func (r *testCorreos) List(ctx context.Context) ([]Correo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Correo, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

type testFlujos struct {
	mu   sync.Mutex
	rows []FlujoCorreo
	// failCreate, si no es nil, lo devuelve Create sin guardar
	failCreate error
}

func (r *testFlujos) Create(ctx context.Context, f FlujoCorreo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.rows = append(r.rows, f)
	return nil
}

func (r *testFlujos) Cerrar(ctx context.Context, id string, fin time.Time, horas float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if r.rows[i].FechaFin != nil {
			return ErrFlujoCerrado
		}
		r.rows[i].FechaFin = &fin
		r.rows[i].DuracionHoras = horas
		return nil
	}
	return ErrNotFound
}

func (r *testFlujos) ListByCorreo(ctx context.Context, correoID string) ([]FlujoCorreo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FlujoCorreo, 0)
	for _, f := range r.rows {
		if f.CorreoID == correoID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *testFlujos) List(ctx context.Context) ([]FlujoCorreo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FlujoCorreo(nil), r.rows...), nil
}

// catalogRepo sirve entidades, tipos y usuarios desde un Catalogo fijo.
type catalogRepo[T any] struct {
	items    map[string]T
	notFound error
}

func (r catalogRepo[T]) Create(ctx context.Context, v T) error { return nil }
func (r catalogRepo[T]) Update(ctx context.Context, v T) error { return nil }
func (r catalogRepo[T]) Delete(ctx context.Context, id string) error {
	return nil
}

func (r catalogRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	v, ok := r.items[id]
	if !ok {
		var zero T
		return zero, r.notFound
	}
	return v, nil
}

func (r catalogRepo[T]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

type testEnv struct {
	svc     *Service
	correos *testCorreos
	flujos  *testFlujos
}

func newTestEnv() testEnv {
	cat := testCatalogo()
	cs := &testCorreos{byID: map[string]Correo{}}
	fs := &testFlujos{}
	svc := NewService(Deps{
		Correos:   cs,
		Flujos:    fs,
		Entidades: catalogRepo[entidades.Entidad]{items: cat.Entidades, notFound: entidades.ErrNotFound},
		Tipos:     catalogRepo[tipos.TipoSolicitud]{items: cat.Tipos, notFound: tipos.ErrNotFound},
		Usuarios:  catalogRepo[usuarios.Usuario]{items: cat.Usuarios, notFound: usuarios.ErrNotFound},
	})
	svc.now = func() time.Time { return testNow }
	return testEnv{svc: svc, correos: cs, flujos: fs}
}
