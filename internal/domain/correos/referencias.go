package correos

import (
	"context"
	"slices"
	"strings"
)

// ReferenciaCatalogo responde si algún correo apunta al registro de catálogo id.
// Los servicios de catálogo la usan para rechazar borrados de filas en uso.
type ReferenciaCatalogo func(ctx context.Context, id string) (bool, error)

func (f ReferenciaCatalogo) Referenciado(ctx context.Context, id string) (bool, error) {
	return f(ctx, id)
}

func ReferenciaGestor(repo Repository) ReferenciaCatalogo {
	return referencia(repo, func(c Correo) string { return c.GestorID })
}

func ReferenciaEntidad(repo Repository) ReferenciaCatalogo {
	return referencia(repo, func(c Correo) string { return c.EntidadID })
}

func ReferenciaTipo(repo Repository) ReferenciaCatalogo {
	return referencia(repo, func(c Correo) string { return c.TipoSolicitudID })
}

func referencia(repo Repository, campo func(Correo) string) ReferenciaCatalogo {
	return func(ctx context.Context, id string) (bool, error) {
		id = strings.TrimSpace(id)
		if id == "" {
			return false, nil
		}
		cs, err := repo.List(ctx)
		if err != nil {
			return false, err
		}
		return slices.ContainsFunc(cs, func(c Correo) bool { return campo(c) == id }), nil
	}
}
