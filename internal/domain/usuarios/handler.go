package usuarios

import (
	"errors"
	"net/http"
	"time"

	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	admin := middleware.RequireRole(RolAdmin.Token())

	r.Route("/usuarios", func(ur chi.Router) {
		ur.Use(middleware.RequireAuth)

		ur.Get("/", listUsuariosHandler(svc))
		ur.Get("/{usuarioID}", getUsuarioHandler(svc))

		ur.With(admin).Post("/", createUsuarioHandler(svc))
		ur.With(admin).Patch("/{usuarioID}", updateUsuarioHandler(svc))
		ur.With(admin).Delete("/{usuarioID}", deleteUsuarioHandler(svc))
	})
}

type createUsuarioRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Rol    Rol    `json:"rol" validate:"required"`
}

type updateUsuarioRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Rol    *Rol    `json:"rol"`
	Activo *bool   `json:"activo"`
}

type usuarioResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       Rol       `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createUsuarioHandler godoc
// @Summary Crear usuario
// @Description Registra un usuario con su rol. Solo ADMIN.
// @Tags usuarios
// @Accept json
// @Produce json
// @Param payload body createUsuarioRequest true "Datos del usuario"
// @Success 201 {object} usuarioResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 403 {object} httpjson.ErrorBody
// @Router /usuarios [post]
func createUsuarioHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUsuarioRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Nombre: req.Nombre,
			Email:  req.Email,
			Rol:    req.Rol,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toUsuarioResponse(u))
	}
}

// listUsuariosHandler godoc
// @Summary Listar usuarios
// @Tags usuarios
// @Produce json
// @Success 200 {array} usuarioResponse
// @Router /usuarios [get]
func listUsuariosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]usuarioResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUsuarioResponse(u))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getUsuarioHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "usuarioID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toUsuarioResponse(u))
	}
}

func updateUsuarioHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUsuarioRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "usuarioID"), UpdateInput{
			Nombre: req.Nombre,
			Email:  req.Email,
			Rol:    req.Rol,
			Activo: req.Activo,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toUsuarioResponse(u))
	}
}

// deleteUsuarioHandler godoc
// @Summary Eliminar usuario
// @Description Con correos asignados responde 409; en ese caso se desactiva con activo=false.
// @Tags usuarios
// @Param usuarioID path string true "Usuario"
// @Success 204
// @Failure 409 {object} httpjson.ErrorBody
// @Router /usuarios/{usuarioID} [delete]
func deleteUsuarioHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "usuarioID")); err != nil {
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
		httpjson.Error(w, http.StatusNotFound, "usuario not found")
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toUsuarioResponse(u Usuario) usuarioResponse {
	return usuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
