package entidades

import (
	"errors"
	"net/http"
	"time"

	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes recibe el token del rol admin para no importar usuarios.
func RegisterRoutes(r chi.Router, svc *Service, adminRole string) {
	admin := middleware.RequireRole(adminRole)

	r.Route("/entidades", func(er chi.Router) {
		er.Use(middleware.RequireAuth)

		er.Get("/", listEntidadesHandler(svc))
		er.Get("/{entidadID}", getEntidadHandler(svc))

		er.With(admin).Post("/", createEntidadHandler(svc))
		er.With(admin).Patch("/{entidadID}", updateEntidadHandler(svc))
		er.With(admin).Delete("/{entidadID}", deleteEntidadHandler(svc))
	})
}

type createEntidadRequest struct {
	Nombre        string   `json:"nombre" validate:"required"`
	Dominios      []string `json:"dominios" validate:"required,min=1,dive,required"`
	ResponsableID string   `json:"responsable_id"`
}

type updateEntidadRequest struct {
	Nombre        *string   `json:"nombre" validate:"omitempty,min=1"`
	Dominios      *[]string `json:"dominios" validate:"omitempty,min=1,dive,required"`
	ResponsableID *string   `json:"responsable_id"`
	Activa        *bool     `json:"activa"`
}

type entidadResponse struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Dominios      []string  `json:"dominios"`
	ResponsableID string    `json:"responsable_id,omitempty"`
	Activa        bool      `json:"activa"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// createEntidadHandler godoc
// @Summary Crear entidad
// @Description Registra una entidad externa con sus dominios de correo permitidos. Solo ADMIN.
// @Tags entidades
// @Accept json
// @Produce json
// @Param payload body createEntidadRequest true "Datos de la entidad"
// @Success 201 {object} entidadResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 422 {object} httpjson.ErrorBody
// @Router /entidades [post]
func createEntidadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEntidadRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			Nombre:        req.Nombre,
			Dominios:      req.Dominios,
			ResponsableID: req.ResponsableID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toEntidadResponse(e))
	}
}

// listEntidadesHandler godoc
// @Summary Listar entidades
// @Tags entidades
// @Produce json
// @Success 200 {array} entidadResponse
// @Router /entidades [get]
func listEntidadesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]entidadResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntidadResponse(e))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getEntidadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "entidadID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toEntidadResponse(e))
	}
}

func updateEntidadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEntidadRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}
		e, err := svc.Update(r.Context(), chi.URLParam(r, "entidadID"), UpdateInput{
			Nombre:        req.Nombre,
			Dominios:      req.Dominios,
			ResponsableID: req.ResponsableID,
			Activa:        req.Activa,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toEntidadResponse(e))
	}
}

// deleteEntidadHandler godoc
// @Summary Eliminar entidad
// @Description Con correos asociados responde 409; en ese caso se desactiva con activa=false.
// @Tags entidades
// @Param entidadID path string true "Entidad"
// @Success 204
// @Failure 409 {object} httpjson.ErrorBody
// @Router /entidades/{entidadID} [delete]
func deleteEntidadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "entidadID")); err != nil {
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
		httpjson.Error(w, http.StatusNotFound, "entidad not found")
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toEntidadResponse(e Entidad) entidadResponse {
	return entidadResponse{
		ID:            e.ID,
		Nombre:        e.Nombre,
		Dominios:      e.Dominios,
		ResponsableID: e.ResponsableID,
		Activa:        e.Activa,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
