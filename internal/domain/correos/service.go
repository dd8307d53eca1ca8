package correos

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/sla"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"
	"gestion-correos/internal/platform/logger"

	"github.com/google/uuid"
)

type Deps struct {
	Correos   Repository
	Flujos    FlujoRepository
	Entidades entidades.Repository
	Tipos     tipos.Repository
	Usuarios  usuarios.Repository
	Logger    logger.Logger
}

type Service struct {
	repo      Repository
	flujos    FlujoRepository
	entidades entidades.Repository
	tipos     tipos.Repository
	usuarios  usuarios.Repository
	loader    *SnapshotLoader
	log       logger.Logger
	now       func() time.Time
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      d.Correos,
		flujos:    d.Flujos,
		entidades: d.Entidades,
		tipos:     d.Tipos,
		usuarios:  d.Usuarios,
		loader: &SnapshotLoader{
			Correos:   d.Correos,
			Flujos:    d.Flujos,
			Entidades: d.Entidades,
			Tipos:     d.Tipos,
			Usuarios:  d.Usuarios,
		},
		log: log.With(map[string]any{"module": "correos"}),
		now: time.Now,
	}
}

// Actor es quien ejecuta la operación (claims ya verificados).
type Actor struct {
	UsuarioID string
	Roles     []string // ROLE_*
}

func (a Actor) tieneRol(tokens ...string) bool {
	for _, r := range a.Roles {
		if slices.Contains(tokens, r) {
			return true
		}
	}
	return false
}

type CreateInput struct {
	ID              string // opcional
	Radicado        string // vacío => se genera
	Asunto          string
	Remitente       string
	Descripcion     string
	EntidadID       string
	TipoSolicitudID string
	GestorID        string
	FechaRecepcion  time.Time // cero => now
}

func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (Correo, error) {
	if strings.TrimSpace(in.Asunto) == "" || strings.TrimSpace(in.Remitente) == "" {
		return Correo{}, ErrInvalidInput
	}
	if strings.TrimSpace(actor.UsuarioID) == "" {
		return Correo{}, ErrInvalidInput
	}

	ent, err := s.entidad(ctx, in.EntidadID)
	if err != nil {
		return Correo{}, err
	}
	if !ent.Activa {
		return Correo{}, fmt.Errorf("%w: entidad %s inactiva", ErrInvalidInput, ent.ID)
	}
	if !ent.PermiteRemitente(in.Remitente) {
		return Correo{}, ErrDominioNoPermitido
	}

	tp, err := s.tipo(ctx, in.TipoSolicitudID)
	if err != nil {
		return Correo{}, err
	}
	if !tp.Activo {
		return Correo{}, fmt.Errorf("%w: tipo %s inactivo", ErrInvalidInput, tp.ID)
	}

	gestorID := strings.TrimSpace(in.GestorID)
	if gestorID != "" {
		if _, err := s.gestorActivo(ctx, gestorID); err != nil {
			return Correo{}, err
		}
	} else if ent.ResponsableID != "" {
		// el responsable de la entidad solo se toma si hoy es un gestor activo
		if u, err := s.gestorActivo(ctx, ent.ResponsableID); err == nil {
			gestorID = u.ID
		}
	}

	now := s.now()
	recepcion := in.FechaRecepcion
	if recepcion.IsZero() {
		recepcion = now
	}
	venc, err := sla.Vencimiento(recepcion, tp.PlazoDias)
	if err != nil {
		return Correo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	radicado := strings.TrimSpace(in.Radicado)
	if radicado == "" {
		radicado = NuevoRadicado("E", recepcion)
	}

	c := Correo{
		ID:               id,
		Radicado:         radicado,
		Asunto:           strings.TrimSpace(in.Asunto),
		Remitente:        strings.TrimSpace(in.Remitente),
		Descripcion:      strings.TrimSpace(in.Descripcion),
		EntidadID:        ent.ID,
		TipoSolicitudID:  tp.ID,
		GestorID:         gestorID,
		Estado:           EstadoRecepcion,
		FechaRecepcion:   recepcion,
		FechaVencimiento: venc,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Correo{}, err
	}

	if err := s.flujos.Create(ctx, FlujoCorreo{
		ID:          uuid.NewString(),
		CorreoID:    c.ID,
		Etapa:       EstadoRecepcion,
		UsuarioID:   actor.UsuarioID,
		FechaInicio: now,
	}); err != nil {
		// sin etapa RECEPCION el correo no queda radicado
		if derr := s.repo.Delete(ctx, c.ID); derr != nil {
			s.log.Error("deshacer radicación", map[string]any{"correo_id": c.ID, "err": derr.Error()})
		}
		return Correo{}, err
	}

	s.log.Info("correo radicado", map[string]any{
		"correo_id": c.ID,
		"radicado":  c.Radicado,
		"entidad":   c.EntidadID,
		"gestor":    c.GestorID,
	})
	return c, nil
}

type UpdateInput struct {
	Asunto      *string
	Remitente   *string
	Descripcion *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Correo, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Correo{}, err
	}
	if c.Estado == EstadoArchivado {
		return Correo{}, fmt.Errorf("%w: correo archivado", ErrInvalidInput)
	}

	if in.Asunto != nil {
		if strings.TrimSpace(*in.Asunto) == "" {
			return Correo{}, ErrInvalidInput
		}
		c.Asunto = strings.TrimSpace(*in.Asunto)
	}
	if in.Remitente != nil {
		rem := strings.TrimSpace(*in.Remitente)
		if rem == "" {
			return Correo{}, ErrInvalidInput
		}
		ent, err := s.entidad(ctx, c.EntidadID)
		if err != nil {
			return Correo{}, err
		}
		if !ent.PermiteRemitente(rem) {
			return Correo{}, ErrDominioNoPermitido
		}
		c.Remitente = rem
	}
	if in.Descripcion != nil {
		c.Descripcion = strings.TrimSpace(*in.Descripcion)
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Correo{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Warn("correo eliminado", map[string]any{"correo_id": id})
	return nil
}

// Get devuelve el correo con referencias resueltas y SLA a la fecha.
func (s *Service) Get(ctx context.Context, id string) (CorreoVista, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CorreoVista{}, ErrNotFound
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CorreoVista{}, err
	}
	return s.vista(ctx, c)
}

func (s *Service) vista(ctx context.Context, c Correo) (CorreoVista, error) {
	ent, err := s.entidad(ctx, c.EntidadID)
	if err != nil {
		return CorreoVista{}, err
	}
	tp, err := s.tipo(ctx, c.TipoSolicitudID)
	if err != nil {
		return CorreoVista{}, err
	}
	var us []usuarios.Usuario
	if c.GestorID != "" {
		u, err := s.usuario(ctx, c.GestorID)
		if err != nil {
			return CorreoVista{}, err
		}
		us = append(us, u)
	}
	snap := Snapshot{
		Catalogo: NewCatalogo([]entidades.Entidad{ent}, []tipos.TipoSolicitud{tp}, us),
		Now:      s.now(),
	}
	return snap.Vista(c)
}

// Consultar toma un snapshot fresco y aplica filtro, búsqueda, orden y paginación.
func (s *Service) Consultar(ctx context.Context, p ConsultaParams) (Pagina, error) {
	snap, err := s.loader.Load(ctx, s.now())
	if err != nil {
		return Pagina{}, err
	}
	return Consultar(snap, p)
}

// Asignar fija el gestor. Si el correo estaba en RECEPCION pasa a ELABORACION.
func (s *Service) Asignar(ctx context.Context, actor Actor, id, gestorID string) (Correo, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Correo{}, err
	}
	if c.Estado.Cerrado() {
		return Correo{}, fmt.Errorf("%w: correo %s en %s", ErrTransicionInvalida, c.ID, c.Estado)
	}
	g, err := s.gestorActivo(ctx, strings.TrimSpace(gestorID))
	if err != nil {
		return Correo{}, err
	}

	now := s.now()
	prev := c
	c.GestorID = g.ID
	c.UpdatedAt = now
	avanza := c.Estado == EstadoRecepcion
	if avanza {
		c.Estado = EstadoElaboracion
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Correo{}, err
	}
	if avanza {
		if err := s.avanzarFlujo(ctx, c.ID, EstadoElaboracion, g.ID, "asignado a "+g.Nombre, now); err != nil {
			s.restaurar(ctx, prev)
			return Correo{}, err
		}
	}
	s.log.Info("correo asignado", map[string]any{
		"correo_id": c.ID,
		"gestor":    g.ID,
		"actor":     actor.UsuarioID,
	})
	return c, nil
}

type TransicionInput struct {
	Hacia          Estado
	Comentario     string
	ResponsableID  string // quien atiende la nueva etapa; vacío => el actor
	RadicadoSalida string // solo para ENVIADO; vacío => se genera
}

// Transicionar mueve el correo de estado, cierra la etapa abierta y abre la nueva.
func (s *Service) Transicionar(ctx context.Context, actor Actor, id string, in TransicionInput) (Correo, error) {
	hacia, ok := ParseEstado(string(in.Hacia))
	if !ok {
		return Correo{}, fmt.Errorf("%w: estado %q", ErrInvalidInput, in.Hacia)
	}
	if !actor.tieneRol(RolesPara(hacia)...) {
		return Correo{}, fmt.Errorf("%w: su rol no puede mover correos a %s", ErrForbidden, hacia)
	}

	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Correo{}, err
	}
	tp, err := s.tipo(ctx, c.TipoSolicitudID)
	if err != nil {
		return Correo{}, err
	}

	now := s.now()
	res, err := CalcularSLA(c, NewCatalogo(nil, []tipos.TipoSolicitud{tp}, nil), now)
	if err != nil {
		return Correo{}, err
	}
	if err := PuedeTransicionar(c.Estado, hacia, res.DiasRestantes); err != nil {
		return Correo{}, err
	}

	responsable := strings.TrimSpace(in.ResponsableID)
	if responsable == "" {
		responsable = actor.UsuarioID
	} else {
		u, err := s.usuario(ctx, responsable)
		if err != nil {
			return Correo{}, err
		}
		if !u.Activo {
			return Correo{}, fmt.Errorf("%w: usuario %s inactivo", ErrInvalidInput, u.ID)
		}
	}

	prev := c
	desde := c.Estado
	c.Estado = hacia
	c.UpdatedAt = now
	switch hacia {
	case EstadoEnviado:
		c.RadicadoSalida = strings.TrimSpace(in.RadicadoSalida)
		if c.RadicadoSalida == "" {
			c.RadicadoSalida = NuevoRadicado("S", now)
		}
		c.FechaCierre = &now
	case EstadoArchivado:
		if c.FechaCierre == nil {
			c.FechaCierre = &now
		}
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Correo{}, err
	}
	if err := s.avanzarFlujo(ctx, c.ID, hacia, responsable, strings.TrimSpace(in.Comentario), now); err != nil {
		s.restaurar(ctx, prev)
		return Correo{}, err
	}

	s.log.Info("transicion", map[string]any{
		"correo_id": c.ID,
		"desde":     string(desde),
		"hacia":     string(hacia),
		"actor":     actor.UsuarioID,
	})
	return c, nil
}

// Flujo devuelve la trazabilidad en orden cronológico.
func (s *Service) Flujo(ctx context.Context, id string) ([]FlujoCorreo, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	fs, err := s.flujos.ListByCorreo(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	OrdenarFlujos(fs)
	return fs, nil
}

func OrdenarFlujos(fs []FlujoCorreo) {
	slices.SortStableFunc(fs, func(a, b FlujoCorreo) int {
		if c := a.FechaInicio.Compare(b.FechaInicio); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// restaurar devuelve el correo al estado previo cuando falla la escritura del flujo.
// Las etapas que ya se cerraron no se reabren.
func (s *Service) restaurar(ctx context.Context, prev Correo) {
	if err := s.repo.Update(ctx, prev); err != nil {
		s.log.Error("restaurar correo", map[string]any{"correo_id": prev.ID, "err": err.Error()})
	}
}

// avanzarFlujo cierra las etapas abiertas del correo y abre la de etapa.
func (s *Service) avanzarFlujo(ctx context.Context, correoID string, etapa Estado, usuarioID, comentario string, now time.Time) error {
	fs, err := s.flujos.ListByCorreo(ctx, correoID)
	if err != nil {
		return err
	}
	for _, f := range fs {
		if !f.Abierto() {
			continue
		}
		horas := now.Sub(f.FechaInicio).Hours()
		if horas < 0 {
			horas = 0
		}
		if err := s.flujos.Cerrar(ctx, f.ID, now, horas); err != nil && !errors.Is(err, ErrFlujoCerrado) {
			return err
		}
	}
	return s.flujos.Create(ctx, FlujoCorreo{
		ID:          uuid.NewString(),
		CorreoID:    correoID,
		Etapa:       etapa,
		UsuarioID:   usuarioID,
		FechaInicio: now,
		Comentario:  comentario,
	})
}

func (s *Service) entidad(ctx context.Context, id string) (entidades.Entidad, error) {
	e, err := s.entidades.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, entidades.ErrNotFound) {
		return entidades.Entidad{}, fmt.Errorf("%w: entidad %q", ErrReferenceNotFound, id)
	}
	return e, err
}

func (s *Service) tipo(ctx context.Context, id string) (tipos.TipoSolicitud, error) {
	t, err := s.tipos.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, tipos.ErrNotFound) {
		return tipos.TipoSolicitud{}, fmt.Errorf("%w: tipo de solicitud %q", ErrReferenceNotFound, id)
	}
	return t, err
}

func (s *Service) usuario(ctx context.Context, id string) (usuarios.Usuario, error) {
	u, err := s.usuarios.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, usuarios.ErrNotFound) {
		return usuarios.Usuario{}, fmt.Errorf("%w: usuario %q", ErrReferenceNotFound, id)
	}
	return u, err
}

func (s *Service) gestorActivo(ctx context.Context, id string) (usuarios.Usuario, error) {
	u, err := s.usuario(ctx, id)
	if err != nil {
		return usuarios.Usuario{}, err
	}
	if u.Rol != usuarios.RolGestor || !u.Activo {
		return usuarios.Usuario{}, fmt.Errorf("%w: %s no es un gestor activo", ErrInvalidInput, u.ID)
	}
	return u, nil
}

// NuevoRadicado arma un número tipo E-20250301-1A2B3C4D (E entrada, S salida).
func NuevoRadicado(prefijo string, t time.Time) string {
	sufijo := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefijo, t.Format("20060102"), sufijo)
}
