package correos

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const (
	TamPaginaDefault = 20
	TamPaginaMax     = 200
)

type Direccion string

const (
	Asc  Direccion = "asc"
	Desc Direccion = "desc"
)

// ConsultaParams son los parámetros de un listado de correos.
type ConsultaParams struct {
	Filtro     Filtro
	Busqueda   string
	OrdenarPor string // default fechaRecepcion
	Direccion  Direccion
	Pagina     int // base 0
	TamPagina  int
}

type Pagina struct {
	Items        []CorreoVista
	TotalItems   int
	TotalPaginas int
	Pagina       int
	TamPagina    int
}

type comparador func(a, b CorreoVista) int

var camposOrden = map[string]comparador{
	"fechaRecepcion":   func(a, b CorreoVista) int { return a.FechaRecepcion.Compare(b.FechaRecepcion) },
	"fechaVencimiento": func(a, b CorreoVista) int { return a.FechaVencimiento.Compare(b.FechaVencimiento) },
	"createdAt":        func(a, b CorreoVista) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"asunto":           func(a, b CorreoVista) int { return strings.Compare(a.Asunto, b.Asunto) },
	"radicado":         func(a, b CorreoVista) int { return strings.Compare(a.Radicado, b.Radicado) },
	"estado":           func(a, b CorreoVista) int { return strings.Compare(string(a.Estado), string(b.Estado)) },
	"entidad":          func(a, b CorreoVista) int { return strings.Compare(a.EntidadNombre, b.EntidadNombre) },
	"remitente":        func(a, b CorreoVista) int { return strings.Compare(a.Remitente, b.Remitente) },
	"diasRestantes":    func(a, b CorreoVista) int { return cmp.Compare(a.DiasRestantes, b.DiasRestantes) },
}

// nombresOrden lista los campos aceptados por OrdenarPor, ordenados.
func nombresOrden() []string {
	out := make([]string, 0, len(camposOrden))
	for k := range camposOrden {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Consultar filtra, busca, ordena y pagina sobre el snapshot. No toca el store.
func Consultar(snap Snapshot, p ConsultaParams) (Pagina, error) {
	campo := strings.TrimSpace(p.OrdenarPor)
	if campo == "" {
		campo = "fechaRecepcion"
	}
	cmpFn, ok := camposOrden[campo]
	if !ok {
		return Pagina{}, fmt.Errorf("%w: ordenar por %q (use %s)", ErrInvalidInput, campo, strings.Join(nombresOrden(), ", "))
	}

	dir := Direccion(strings.ToLower(strings.TrimSpace(string(p.Direccion))))
	switch dir {
	case "":
		dir = Desc
	case Asc, Desc:
	default:
		return Pagina{}, fmt.Errorf("%w: direccion %q", ErrInvalidInput, p.Direccion)
	}

	size := p.TamPagina
	switch {
	case size <= 0:
		size = TamPaginaDefault
	case size > TamPaginaMax:
		size = TamPaginaMax
	}

	vistas, err := snap.Vistas(p.Filtro)
	if err != nil {
		return Pagina{}, err
	}

	q := strings.ToLower(strings.TrimSpace(p.Busqueda))
	if q != "" {
		vistas = slices.DeleteFunc(vistas, func(v CorreoVista) bool { return !coincideBusqueda(v, q) })
	}

	slices.SortFunc(vistas, func(a, b CorreoVista) int {
		c := cmpFn(a, b)
		if dir == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	total := len(vistas)
	out := Pagina{
		Items:        []CorreoVista{},
		TotalItems:   total,
		TotalPaginas: (total + size - 1) / size,
		Pagina:       p.Pagina,
		TamPagina:    size,
	}
	// comparar contra TotalPaginas antes de multiplicar: Pagina*size puede desbordar
	if p.Pagina < 0 || p.Pagina >= out.TotalPaginas {
		return out, nil
	}
	start := p.Pagina * size
	end := min(start+size, total)
	out.Items = vistas[start:end]
	return out, nil
}

// q ya viene en minúsculas.
func coincideBusqueda(v CorreoVista, q string) bool {
	for _, campo := range []string{v.Asunto, v.Radicado, v.RadicadoSalida, v.EntidadNombre, v.Remitente} {
		if strings.Contains(strings.ToLower(campo), q) {
			return true
		}
	}
	return false
}
