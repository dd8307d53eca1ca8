// Package seed carga catálogos y correos de ejemplo desde YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gestion-correos/internal/domain/correos"
	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"
	"gestion-correos/internal/platform/logger"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type File struct {
	Usuarios  []Usuario `yaml:"usuarios"`
	Entidades []Entidad `yaml:"entidades"`
	Tipos     []Tipo    `yaml:"tipos"`
	Correos   []Correo  `yaml:"correos"`
}

type Usuario struct {
	ID     string `yaml:"id"`
	Nombre string `yaml:"nombre"`
	Email  string `yaml:"email"`
	Rol    string `yaml:"rol"`
}

type Entidad struct {
	ID            string   `yaml:"id"`
	Nombre        string   `yaml:"nombre"`
	Dominios      []string `yaml:"dominios"`
	ResponsableID string   `yaml:"responsable_id"`
}

type Tipo struct {
	ID        string `yaml:"id"`
	Nombre    string `yaml:"nombre"`
	PlazoDias int    `yaml:"plazo_dias"`
	Urgencia  string `yaml:"urgencia"`
}

type Correo struct {
	ID              string `yaml:"id"`
	Radicado        string `yaml:"radicado"`
	Asunto          string `yaml:"asunto"`
	Remitente       string `yaml:"remitente"`
	Descripcion     string `yaml:"descripcion"`
	EntidadID       string `yaml:"entidad_id"`
	TipoSolicitudID string `yaml:"tipo_solicitud_id"`
	GestorID        string `yaml:"gestor_id"`
	DiasAtras       int    `yaml:"dias_atras"`
	// Estado destino; vacío => RECEPCION.
	Estado string `yaml:"estado"`
}

// Parse decodifica un archivo de seed. Campos desconocidos son error.
func Parse(b []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("seed: %w", err)
	}
	return f, nil
}

// Load lee path; con path vacío usa el seed embebido.
func Load(path string) (File, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultYAML)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("seed: %w", err)
	}
	return Parse(b)
}

type Services struct {
	Usuarios  *usuarios.Service
	Entidades *entidades.Service
	Tipos     *tipos.Service
	Correos   *correos.Service
}

// sistema es el actor de los correos sembrados.
var sistema = correos.Actor{UsuarioID: "sistema", Roles: []string{usuarios.RolAdmin.Token()}}

// Apply siembra f a través de los servicios, así cada registro pasa las mismas
// validaciones que la API. Los correos se llevan hasta su estado destino.
func Apply(ctx context.Context, svc Services, f File, now time.Time, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	for _, u := range f.Usuarios {
		if _, err := svc.Usuarios.Create(ctx, usuarios.CreateInput{
			ID: u.ID, Nombre: u.Nombre, Email: u.Email, Rol: usuarios.Rol(u.Rol),
		}); err != nil {
			return fmt.Errorf("seed usuario %s: %w", u.ID, err)
		}
	}
	for _, e := range f.Entidades {
		if _, err := svc.Entidades.Create(ctx, entidades.CreateInput{
			ID: e.ID, Nombre: e.Nombre, Dominios: e.Dominios, ResponsableID: e.ResponsableID,
		}); err != nil {
			return fmt.Errorf("seed entidad %s: %w", e.ID, err)
		}
	}
	for _, t := range f.Tipos {
		urg, _ := tipos.ParseUrgencia(t.Urgencia)
		if _, err := svc.Tipos.Create(ctx, tipos.CreateInput{
			ID: t.ID, Nombre: t.Nombre, PlazoDias: t.PlazoDias, Urgencia: urg,
		}); err != nil {
			return fmt.Errorf("seed tipo %s: %w", t.ID, err)
		}
	}
	for _, c := range f.Correos {
		if err := applyCorreo(ctx, svc.Correos, c, now); err != nil {
			return fmt.Errorf("seed correo %s: %w", c.ID, err)
		}
	}

	log.Info("seed aplicado", map[string]any{
		"usuarios":  len(f.Usuarios),
		"entidades": len(f.Entidades),
		"tipos":     len(f.Tipos),
		"correos":   len(f.Correos),
	})
	return nil
}

func applyCorreo(ctx context.Context, svc *correos.Service, in Correo, now time.Time) error {
	destino := correos.EstadoRecepcion
	if strings.TrimSpace(in.Estado) != "" {
		e, ok := correos.ParseEstado(in.Estado)
		if !ok {
			return fmt.Errorf("%w: estado %q", correos.ErrInvalidInput, in.Estado)
		}
		destino = e
	}

	c, err := svc.Create(ctx, sistema, correos.CreateInput{
		ID:              in.ID,
		Radicado:        in.Radicado,
		Asunto:          in.Asunto,
		Remitente:       in.Remitente,
		Descripcion:     in.Descripcion,
		EntidadID:       in.EntidadID,
		TipoSolicitudID: in.TipoSolicitudID,
		GestorID:        in.GestorID,
		FechaRecepcion:  now.AddDate(0, 0, -in.DiasAtras),
	})
	if err != nil {
		return err
	}

	for _, paso := range camino(destino) {
		if _, err := svc.Transicionar(ctx, sistema, c.ID, correos.TransicionInput{
			Hacia:         paso,
			Comentario:    "seed",
			ResponsableID: c.GestorID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// camino: etapas a recorrer desde RECEPCION. VENCIDO y ARCHIVADO se alcanzan directo.
func camino(destino correos.Estado) []correos.Estado {
	switch destino {
	case correos.EstadoRecepcion:
		return nil
	case correos.EstadoVencido, correos.EstadoArchivado:
		return []correos.Estado{destino}
	}
	var out []correos.Estado
	for _, e := range correos.Estados[1:] {
		out = append(out, e)
		if e == destino {
			break
		}
	}
	return out
}
