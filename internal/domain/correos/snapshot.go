package correos

import (
	"context"
	"fmt"
	"time"

	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/sla"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"

	"golang.org/x/sync/errgroup"
)

// Catalogo indexa las referencias de los correos por id.
type Catalogo struct {
	Entidades map[string]entidades.Entidad
	Tipos     map[string]tipos.TipoSolicitud
	Usuarios  map[string]usuarios.Usuario
}

func NewCatalogo(ents []entidades.Entidad, tps []tipos.TipoSolicitud, us []usuarios.Usuario) Catalogo {
	cat := Catalogo{
		Entidades: make(map[string]entidades.Entidad, len(ents)),
		Tipos:     make(map[string]tipos.TipoSolicitud, len(tps)),
		Usuarios:  make(map[string]usuarios.Usuario, len(us)),
	}
	for _, e := range ents {
		cat.Entidades[e.ID] = e
	}
	for _, t := range tps {
		cat.Tipos[t.ID] = t
	}
	for _, u := range us {
		cat.Usuarios[u.ID] = u
	}
	return cat
}

func (c Catalogo) Entidad(id string) (entidades.Entidad, error) {
	e, ok := c.Entidades[id]
	if !ok {
		return entidades.Entidad{}, fmt.Errorf("%w: entidad %q", ErrReferenceNotFound, id)
	}
	return e, nil
}

func (c Catalogo) Tipo(id string) (tipos.TipoSolicitud, error) {
	t, ok := c.Tipos[id]
	if !ok {
		return tipos.TipoSolicitud{}, fmt.Errorf("%w: tipo de solicitud %q", ErrReferenceNotFound, id)
	}
	return t, nil
}

func (c Catalogo) Usuario(id string) (usuarios.Usuario, error) {
	u, ok := c.Usuarios[id]
	if !ok {
		return usuarios.Usuario{}, fmt.Errorf("%w: usuario %q", ErrReferenceNotFound, id)
	}
	return u, nil
}

// Snapshot es una lectura consistente del store más el instante de referencia.
// Métricas, notificaciones y consultas trabajan solo sobre un Snapshot.
type Snapshot struct {
	Correos  []Correo
	Flujos   []FlujoCorreo
	Catalogo Catalogo
	Now      time.Time
}

// CalcularSLA resuelve el plazo vigente del tipo y calcula los días.
// Un correo cerrado se mide contra FechaCierre, no contra now.
func CalcularSLA(c Correo, cat Catalogo, now time.Time) (sla.Resultado, error) {
	t, err := cat.Tipo(c.TipoSolicitudID)
	if err != nil {
		return sla.Resultado{}, err
	}
	ref := now
	if c.Estado.Cerrado() && c.FechaCierre != nil {
		ref = *c.FechaCierre
	}
	res, err := sla.Calcular(c.FechaRecepcion, t.PlazoDias, ref)
	if err != nil {
		return sla.Resultado{}, fmt.Errorf("correo %s: %w", c.ID, err)
	}
	return res, nil
}

// Vencido: no cerrado y con días restantes negativos. Es la única definición de vencido.
func Vencido(c Correo, r sla.Resultado) bool {
	return !c.Estado.Cerrado() && r.Vencido()
}

// Vista resuelve todas las referencias. Un gestor inexistente también es error.
func (s Snapshot) Vista(c Correo) (CorreoVista, error) {
	ent, err := s.Catalogo.Entidad(c.EntidadID)
	if err != nil {
		return CorreoVista{}, err
	}
	tp, err := s.Catalogo.Tipo(c.TipoSolicitudID)
	if err != nil {
		return CorreoVista{}, err
	}
	gestor := ""
	if c.GestorID != "" {
		u, err := s.Catalogo.Usuario(c.GestorID)
		if err != nil {
			return CorreoVista{}, err
		}
		gestor = u.Nombre
	}
	res, err := CalcularSLA(c, s.Catalogo, s.Now)
	if err != nil {
		return CorreoVista{}, err
	}

	return CorreoVista{
		Correo:            c,
		EntidadNombre:     ent.Nombre,
		TipoNombre:        tp.Nombre,
		Urgencia:          string(tp.Urgencia),
		PlazoDias:         tp.PlazoDias,
		GestorNombre:      gestor,
		DiasTranscurridos: res.DiasTranscurridos,
		DiasRestantes:     res.DiasRestantes,
		Vencido:           Vencido(c, res),
	}, nil
}

// Vistas aplica Vista a todos los correos que pasan el filtro, en el orden del snapshot.
func (s Snapshot) Vistas(f Filtro) ([]CorreoVista, error) {
	out := make([]CorreoVista, 0, len(s.Correos))
	for _, c := range s.Correos {
		v, err := s.Vista(c)
		if err != nil {
			return nil, err
		}
		if f.Coincide(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// SnapshotLoader lee las cinco colecciones en paralelo.
type SnapshotLoader struct {
	Correos   Repository
	Flujos    FlujoRepository
	Entidades entidades.Repository
	Tipos     tipos.Repository
	Usuarios  usuarios.Repository
}

func (l *SnapshotLoader) Load(ctx context.Context, now time.Time) (Snapshot, error) {
	var (
		cs   []Correo
		fs   []FlujoCorreo
		ents []entidades.Entidad
		tps  []tipos.TipoSolicitud
		us   []usuarios.Usuario
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { cs, err = l.Correos.List(gctx); return })
	g.Go(func() (err error) { fs, err = l.Flujos.List(gctx); return })
	g.Go(func() (err error) { ents, err = l.Entidades.List(gctx); return })
	g.Go(func() (err error) { tps, err = l.Tipos.List(gctx); return })
	g.Go(func() (err error) { us, err = l.Usuarios.List(gctx); return })
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	return Snapshot{
		Correos:  cs,
		Flujos:   fs,
		Catalogo: NewCatalogo(ents, tps, us),
		Now:      now,
	}, nil
}
