package tipos

import (
	"errors"
	"net/http"
	"time"

	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, adminRole string) {
	admin := middleware.RequireRole(adminRole)

	r.Route("/tipos-solicitud", func(tr chi.Router) {
		tr.Use(middleware.RequireAuth)

		tr.Get("/", listTiposHandler(svc))
		tr.Get("/{tipoID}", getTipoHandler(svc))

		tr.With(admin).Post("/", createTipoHandler(svc))
		tr.With(admin).Patch("/{tipoID}", updateTipoHandler(svc))
		tr.With(admin).Delete("/{tipoID}", deleteTipoHandler(svc))
	})
}

type createTipoRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	PlazoDias int    `json:"plazo_dias" validate:"required,min=1,max=365"`
	Urgencia  string `json:"urgencia" validate:"omitempty,oneof=BAJA MEDIA ALTA"`
}

type updateTipoRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1"`
	PlazoDias *int    `json:"plazo_dias" validate:"omitempty,min=1,max=365"`
	Urgencia  *string `json:"urgencia" validate:"omitempty,oneof=BAJA MEDIA ALTA"`
	Activo    *bool   `json:"activo"`
}

type tipoResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	PlazoDias int       `json:"plazo_dias"`
	Urgencia  Urgencia  `json:"urgencia"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createTipoHandler godoc
// @Summary Crear tipo de solicitud
// @Tags tipos-solicitud
// @Accept json
// @Produce json
// @Param payload body createTipoRequest true "Tipo de solicitud"
// @Success 201 {object} tipoResponse
// @Failure 422 {object} httpjson.ErrorBody
// @Router /tipos-solicitud [post]
func createTipoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTipoRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}
		t, err := svc.Create(r.Context(), CreateInput{
			Nombre:    req.Nombre,
			PlazoDias: req.PlazoDias,
			Urgencia:  Urgencia(req.Urgencia),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toTipoResponse(t))
	}
}

// listTiposHandler godoc
// @Summary Listar tipos de solicitud
// @Tags tipos
// @Produce json
// @Success 200 {array} tipoResponse
// @Router /tipos-solicitud [get]
func listTiposHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]tipoResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTipoResponse(t))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getTipoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "tipoID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toTipoResponse(t))
	}
}

func updateTipoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTipoRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}
		in := UpdateInput{
			Nombre:    req.Nombre,
			PlazoDias: req.PlazoDias,
			Activo:    req.Activo,
		}
		if req.Urgencia != nil {
			u := Urgencia(*req.Urgencia)
			in.Urgencia = &u
		}
		t, err := svc.Update(r.Context(), chi.URLParam(r, "tipoID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toTipoResponse(t))
	}
}

// deleteTipoHandler godoc
// @Summary Eliminar tipo de solicitud
// @Description Con correos asociados responde 409; en ese caso se desactiva con activo=false.
// @Tags tipos
// @Param tipoID path string true "Tipo de solicitud"
// @Success 204
// @Failure 409 {object} httpjson.ErrorBody
// @Router /tipos-solicitud/{tipoID} [delete]
func deleteTipoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "tipoID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEnUso):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "tipo de solicitud not found")
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toTipoResponse(t TipoSolicitud) tipoResponse {
	return tipoResponse{
		ID:        t.ID,
		Nombre:    t.Nombre,
		PlazoDias: t.PlazoDias,
		Urgencia:  t.Urgencia,
		Activo:    t.Activo,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
