package notificaciones

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"gestion-correos/internal/domain/correos"
)

const (
	// días restantes por debajo de los cuales se avisa el vencimiento
	umbralProximo = 5
	umbralUrgente = 2
)

// niveles de VENCIMIENTO, sufijo del id
const (
	nivelProximo = "proximo"
	nivelUrgente = "urgente"
	nivelVencido = "vencido"
)

// Derivar sintetiza las notificaciones del snapshot. Mismo snapshot, misma salida.
// Orden: Fecha desc, ID asc.
func Derivar(snap correos.Snapshot) ([]Notificacion, error) {
	d := derivador{now: snap.Now, seen: map[string]struct{}{}}

	vistas := make(map[string]correos.CorreoVista, len(snap.Correos))
	porVencer, vencidos := 0, 0

	for _, c := range snap.Correos {
		v, err := snap.Vista(c)
		if err != nil {
			return nil, err
		}
		vistas[c.ID] = v
		if v.Vencido {
			vencidos++
		}
		if proximo(v) {
			porVencer++
		}
		d.porCorreo(v)
	}

	for _, f := range snap.Flujos {
		v, ok := vistas[f.CorreoID]
		if !ok {
			// flujo de un correo eliminado
			continue
		}
		d.porFlujo(v, f)
	}

	if len(snap.Correos) > 0 {
		d.resumenDiario(vencidos, porVencer)
	}
	for _, u := range snap.Catalogo.Usuarios {
		if u.Activo && strings.TrimSpace(u.Email) == "" {
			d.add(Notificacion{
				ID:        "SISTEMA:perfil:" + u.ID,
				Tipo:      TipoSistema,
				Titulo:    "Completa tu perfil",
				Mensaje:   "Tu usuario no tiene correo electrónico registrado.",
				UsuarioID: u.ID,
				Fecha:     inicioDia(snap.Now),
				Destino:   "/perfil",
			})
		}
	}

	slices.SortFunc(d.out, func(a, b Notificacion) int {
		if c := b.Fecha.Compare(a.Fecha); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return d.out, nil
}

// ParaUsuario deja las del usuario y las dirigidas a todos.
func ParaUsuario(items []Notificacion, usuarioID string) []Notificacion {
	out := make([]Notificacion, 0, len(items))
	for _, n := range items {
		if n.UsuarioID == usuarioID || n.UsuarioID == Todos {
			out = append(out, n)
		}
	}
	return out
}

type derivador struct {
	now  time.Time
	out  []Notificacion
	seen map[string]struct{}
}

// add descarta ids repetidos; el id ya codifica (tipo, correo[, flujo]).
func (d *derivador) add(n Notificacion) { d.addClave(n.ID, n) }

// addClave deduplica por clave; la primera gana.
func (d *derivador) addClave(clave string, n Notificacion) {
	if _, ok := d.seen[clave]; ok {
		return
	}
	d.seen[clave] = struct{}{}
	d.out = append(d.out, n)
}

func (d *derivador) porCorreo(v correos.CorreoVista) {
	destino := "/correos/" + v.ID
	dest := v.GestorID
	if dest == "" {
		dest = Todos
	}

	if v.Estado == correos.EstadoRecepcion {
		d.add(Notificacion{
			ID:        id(TipoRecepcion, v.ID),
			Tipo:      TipoRecepcion,
			Titulo:    "Nuevo correo recibido",
			Mensaje:   fmt.Sprintf("%s de %s: %s", v.Radicado, v.EntidadNombre, v.Asunto),
			CorreoID:  v.ID,
			UsuarioID: Todos,
			Fecha:     v.FechaRecepcion,
			Destino:   destino,
		})
	}

	if v.GestorID != "" && v.Estado == correos.EstadoElaboracion {
		d.add(Notificacion{
			ID:        id(TipoAsignacion, v.ID),
			Tipo:      TipoAsignacion,
			Titulo:    "Correo asignado",
			Mensaje:   fmt.Sprintf("Se te asignó %s: %s", v.Radicado, v.Asunto),
			CorreoID:  v.ID,
			UsuarioID: v.GestorID,
			Fecha:     fechaCambio(v.Correo),
			Destino:   destino,
		})
	}

	// Una sola VENCIMIENTO por correo y pasada. El nivel va en el id: una marca
	// de leída sobre el aviso "próximo" no tapa el escalamiento a urgente o vencido.
	clave := id(TipoVencimiento, v.ID)
	switch {
	case v.Estado == correos.EstadoVencido:
		fecha := v.FechaVencimiento
		if fecha.IsZero() {
			fecha = d.now
		}
		d.addClave(clave, Notificacion{
			ID:        clave + ":" + nivelVencido,
			Tipo:      TipoVencimiento,
			Titulo:    "Correo vencido",
			Mensaje:   fmt.Sprintf("%s superó su plazo hace %d días", v.Radicado, max(0, -v.DiasRestantes)),
			CorreoID:  v.ID,
			UsuarioID: dest,
			Fecha:     fecha,
			Urgente:   true,
			Destino:   destino,
		})
	case proximo(v):
		urgente := v.DiasRestantes < umbralUrgente
		nivel := nivelProximo
		if urgente {
			nivel = nivelUrgente
		}
		d.addClave(clave, Notificacion{
			ID:        clave + ":" + nivel,
			Tipo:      TipoVencimiento,
			Titulo:    "Correo próximo a vencer",
			Mensaje:   fmt.Sprintf("%s vence en %d días", v.Radicado, v.DiasRestantes),
			CorreoID:  v.ID,
			UsuarioID: dest,
			Fecha:     d.now,
			Urgente:   urgente,
			Destino:   destino,
		})
	}

	if v.RadicadoSalida != "" && v.Estado == correos.EstadoEnviado {
		fecha := fechaCambio(v.Correo)
		if v.FechaCierre != nil {
			fecha = *v.FechaCierre
		}
		d.add(Notificacion{
			ID:        id(TipoEnvio, v.ID),
			Tipo:      TipoEnvio,
			Titulo:    "Respuesta enviada",
			Mensaje:   fmt.Sprintf("%s respondido con %s", v.Radicado, v.RadicadoSalida),
			CorreoID:  v.ID,
			UsuarioID: dest,
			Fecha:     fecha,
			Leida:     true,
			Destino:   destino,
		})
	}
}

func (d *derivador) porFlujo(v correos.CorreoVista, f correos.FlujoCorreo) {
	if f.UsuarioID == "" {
		return
	}
	var tipo Tipo
	var titulo string
	switch f.Etapa {
	case correos.EstadoRevision:
		tipo, titulo = TipoRevision, "Correo pendiente de revisión"
	case correos.EstadoAprobacion:
		tipo, titulo = TipoAprobacion, "Correo pendiente de aprobación"
	default:
		return
	}
	d.add(Notificacion{
		ID:        id(tipo, v.ID) + ":" + f.ID,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   fmt.Sprintf("%s: %s", v.Radicado, v.Asunto),
		CorreoID:  v.ID,
		UsuarioID: f.UsuarioID,
		Fecha:     f.FechaInicio,
		Leida:     f.FechaFin != nil,
		Destino:   "/correos/" + v.ID,
	})
}

func (d *derivador) resumenDiario(vencidos, porVencer int) {
	dia := inicioDia(d.now)
	d.add(Notificacion{
		ID:        "SISTEMA:resumen:" + dia.Format("2006-01-02"),
		Tipo:      TipoSistema,
		Titulo:    "Resumen diario",
		Mensaje:   fmt.Sprintf("%d correos vencidos y %d próximos a vencer", vencidos, porVencer),
		UsuarioID: Todos,
		Fecha:     dia,
		Urgente:   vencidos > 0,
		Destino:   "/dashboard",
	})
}

func proximo(v correos.CorreoVista) bool {
	return !v.Estado.Cerrado() && v.DiasRestantes >= 0 && v.DiasRestantes < umbralProximo
}

func id(t Tipo, correoID string) string { return string(t) + ":" + correoID }

func fechaCambio(c correos.Correo) time.Time {
	if !c.UpdatedAt.IsZero() {
		return c.UpdatedAt
	}
	return c.FechaRecepcion
}

func inicioDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
