package notificaciones

import (
	"errors"
	"net/http"

	"gestion-correos/internal/domain/correos"
	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notificaciones", func(nr chi.Router) {
		nr.Use(middleware.RequireAuth)

		nr.Get("/", listHandler(svc))
		nr.Get("/count", countHandler(svc))
		nr.Post("/leer-todas", leerTodasHandler(svc))
		nr.Post("/{notificacionID}/leer", leerHandler(svc))
	})
}

type countResponse struct {
	NoLeidas int `json:"no_leidas"`
}

type leerTodasResponse struct {
	Marcadas int `json:"marcadas"`
}

// listHandler godoc
// @Summary Notificaciones del usuario
// @Description Derivadas del estado actual de los correos; incluye las dirigidas a todos.
// @Tags notificaciones
// @Produce json
// @Param no_leidas query bool false "Solo no leídas"
// @Success 200 {array} Notificacion
// @Router /notificaciones [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		items, err := svc.Listar(r.Context(), claims.UserID, r.URL.Query().Get("no_leidas") == "true")
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

// countHandler godoc
// @Summary Conteo de no leídas
// @Tags notificaciones
// @Produce json
// @Success 200 {object} countResponse
// @Router /notificaciones/count [get]
func countHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		n, err := svc.ContarNoLeidas(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, countResponse{NoLeidas: n})
	}
}

// leerHandler godoc
// @Summary Marcar una como leída
// @Tags notificaciones
// @Param notificacionID path string true "Notificación"
// @Success 204
// @Failure 404 {object} httpjson.ErrorBody
// @Router /notificaciones/{notificacionID}/leer [post]
func leerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if err := svc.MarcarLeida(r.Context(), claims.UserID, chi.URLParam(r, "notificacionID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// leerTodasHandler godoc
// @Summary Marcar todas como leídas
// @Tags notificaciones
// @Produce json
// @Success 200 {object} leerTodasResponse
// @Router /notificaciones/leer-todas [post]
func leerTodasHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		n, err := svc.MarcarTodasLeidas(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, leerTodasResponse{Marcadas: n})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "notificacion not found")
	default:
		correos.WriteError(w, err)
	}
}
