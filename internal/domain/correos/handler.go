package correos

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gestion-correos/internal/domain/usuarios"
	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	radicadores := middleware.RequireRole(usuarios.Tokens(usuarios.RolIntegrador, usuarios.RolAdmin)...)
	admin := middleware.RequireRole(usuarios.RolAdmin.Token())

	r.Route("/correos", func(cr chi.Router) {
		cr.Use(middleware.RequireAuth)

		cr.Get("/", listCorreosHandler(svc))
		cr.With(radicadores).Post("/", createCorreoHandler(svc))

		cr.Route("/{correoID}", func(one chi.Router) {
			one.Get("/", getCorreoHandler(svc))
			one.Patch("/", updateCorreoHandler(svc))
			one.With(admin).Delete("/", deleteCorreoHandler(svc))

			one.With(radicadores).Post("/asignar", asignarHandler(svc))
			// el rol requerido depende del estado destino; lo valida el service
			one.Post("/transiciones", transicionHandler(svc))
			one.Get("/flujo", flujoHandler(svc))
		})
	})
}

type createCorreoRequest struct {
	Radicado        string     `json:"radicado"`
	Asunto          string     `json:"asunto" validate:"required"`
	Remitente       string     `json:"remitente" validate:"required"`
	Descripcion     string     `json:"descripcion"`
	EntidadID       string     `json:"entidad_id" validate:"required"`
	TipoSolicitudID string     `json:"tipo_solicitud_id" validate:"required"`
	GestorID        string     `json:"gestor_id"`
	FechaRecepcion  *time.Time `json:"fecha_recepcion"`
}

type updateCorreoRequest struct {
	Asunto      *string `json:"asunto" validate:"omitempty,min=1"`
	Remitente   *string `json:"remitente" validate:"omitempty,min=1"`
	Descripcion *string `json:"descripcion"`
}

type asignarRequest struct {
	GestorID string `json:"gestor_id" validate:"required"`
}

type transicionRequest struct {
	Estado         string `json:"estado" validate:"required"`
	Comentario     string `json:"comentario"`
	ResponsableID  string `json:"responsable_id"`
	RadicadoSalida string `json:"radicado_salida"`
}

type correoResponse struct {
	ID               string     `json:"id"`
	Radicado         string     `json:"radicado"`
	RadicadoSalida   string     `json:"radicado_salida,omitempty"`
	Asunto           string     `json:"asunto"`
	Remitente        string     `json:"remitente"`
	Descripcion      string     `json:"descripcion,omitempty"`
	EntidadID        string     `json:"entidad_id"`
	TipoSolicitudID  string     `json:"tipo_solicitud_id"`
	GestorID         string     `json:"gestor_id,omitempty"`
	Estado           Estado     `json:"estado"`
	FechaRecepcion   time.Time  `json:"fecha_recepcion"`
	FechaVencimiento time.Time  `json:"fecha_vencimiento"`
	FechaCierre      *time.Time `json:"fecha_cierre,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type correoVistaResponse struct {
	correoResponse

	EntidadNombre     string `json:"entidad_nombre"`
	TipoNombre        string `json:"tipo_solicitud_nombre"`
	Urgencia          string `json:"urgencia"`
	PlazoDias         int    `json:"plazo_dias"`
	GestorNombre      string `json:"gestor_nombre,omitempty"`
	DiasTranscurridos int    `json:"dias_transcurridos"`
	DiasRestantes     int    `json:"dias_restantes"`
	Vencido           bool   `json:"vencido"`
}

type paginaResponse struct {
	Items        []correoVistaResponse `json:"items"`
	TotalItems   int                   `json:"total_items"`
	TotalPaginas int                   `json:"total_paginas"`
	Pagina       int                   `json:"pagina"`
	TamPagina    int                   `json:"tam_pagina"`
}

type flujoResponse struct {
	ID            string     `json:"id"`
	Etapa         Estado     `json:"etapa"`
	UsuarioID     string     `json:"usuario_id"`
	FechaInicio   time.Time  `json:"fecha_inicio"`
	FechaFin      *time.Time `json:"fecha_fin,omitempty"`
	DuracionHoras float64    `json:"duracion_horas"`
	Comentario    string     `json:"comentario,omitempty"`
}

// createCorreoHandler godoc
// @Summary Radicar correo
// @Description Registra un correo entrante, calcula su vencimiento y abre la etapa RECEPCION.
// @Tags correos
// @Accept json
// @Produce json
// @Param payload body createCorreoRequest true "Correo entrante"
// @Success 201 {object} correoResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Failure 422 {object} httpjson.ErrorBody
// @Router /correos [post]
func createCorreoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCorreoRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		in := CreateInput{
			Radicado:        req.Radicado,
			Asunto:          req.Asunto,
			Remitente:       req.Remitente,
			Descripcion:     req.Descripcion,
			EntidadID:       req.EntidadID,
			TipoSolicitudID: req.TipoSolicitudID,
			GestorID:        req.GestorID,
		}
		if req.FechaRecepcion != nil {
			in.FechaRecepcion = *req.FechaRecepcion
		}

		c, err := svc.Create(r.Context(), actorFrom(r), in)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toCorreoResponse(c))
	}
}

// listCorreosHandler godoc
// @Summary Listar correos
// @Description Filtros conjuntivos, búsqueda libre, orden y paginación base 0.
// @Tags correos
// @Produce json
// @Param estado query string false "Estado"
// @Param entidad_id query string false "Entidad"
// @Param gestor_id query string false "Gestor"
// @Param tipo_solicitud_id query string false "Tipo de solicitud"
// @Param urgencia query string false "BAJA, MEDIA o ALTA"
// @Param fecha_inicio query string false "YYYY-MM-DD"
// @Param fecha_fin query string false "YYYY-MM-DD"
// @Param q query string false "Búsqueda en asunto, radicado, entidad y remitente"
// @Param ordenar_por query string false "Campo de orden"
// @Param direccion query string false "asc o desc"
// @Param pagina query int false "Página (base 0)"
// @Param tam_pagina query int false "Tamaño de página (max 200)"
// @Success 200 {object} paginaResponse
// @Router /correos [get]
func listCorreosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filtro, err := ParseFiltro(q)
		if err != nil {
			writeError(w, err)
			return
		}
		pagina, err := intParam(q.Get("pagina"), 0)
		if err != nil {
			writeError(w, err)
			return
		}
		tam, err := intParam(q.Get("tam_pagina"), 0)
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.Consultar(r.Context(), ConsultaParams{
			Filtro:     filtro,
			Busqueda:   q.Get("q"),
			OrdenarPor: q.Get("ordenar_por"),
			Direccion:  Direccion(q.Get("direccion")),
			Pagina:     pagina,
			TamPagina:  tam,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := paginaResponse{
			Items:        make([]correoVistaResponse, 0, len(p.Items)),
			TotalItems:   p.TotalItems,
			TotalPaginas: p.TotalPaginas,
			Pagina:       p.Pagina,
			TamPagina:    p.TamPagina,
		}
		for _, v := range p.Items {
			out.Items = append(out.Items, toCorreoVistaResponse(v))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// getCorreoHandler godoc
// @Summary Correo con SLA
// @Tags correos
// @Produce json
// @Param correoID path string true "Correo"
// @Success 200 {object} correoVistaResponse
// @Failure 404 {object} httpjson.ErrorBody
// @Router /correos/{correoID} [get]
func getCorreoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "correoID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toCorreoVistaResponse(v))
	}
}

// updateCorreoHandler godoc
// @Summary Editar asunto, remitente o descripción
// @Tags correos
// @Accept json
// @Produce json
// @Param correoID path string true "Correo"
// @Param payload body updateCorreoRequest true "Campos a cambiar"
// @Success 200 {object} correoResponse
// @Router /correos/{correoID} [patch]
func updateCorreoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCorreoRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}
		c, err := svc.Update(r.Context(), chi.URLParam(r, "correoID"), UpdateInput{
			Asunto:      req.Asunto,
			Remitente:   req.Remitente,
			Descripcion: req.Descripcion,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toCorreoResponse(c))
	}
}

// deleteCorreoHandler godoc
// @Summary Eliminar correo
// @Tags correos
// @Param correoID path string true "Correo"
// @Success 204
// @Router /correos/{correoID} [delete]
func deleteCorreoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "correoID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// asignarHandler godoc
// @Summary Asignar gestor
// @Tags correos
// @Accept json
// @Produce json
// @Param correoID path string true "Correo"
// @Param payload body asignarRequest true "Gestor"
// @Success 200 {object} correoResponse
// @Failure 409 {object} httpjson.ErrorBody
// @Router /correos/{correoID}/asignar [post]
func asignarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req asignarRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}
		c, err := svc.Asignar(r.Context(), actorFrom(r), chi.URLParam(r, "correoID"), req.GestorID)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toCorreoResponse(c))
	}
}

// transicionHandler godoc
// @Summary Cambiar estado
// @Description Avanza el correo en el flujo. El rol exigido depende del estado destino.
// @Tags correos
// @Accept json
// @Produce json
// @Param correoID path string true "Correo"
// @Param payload body transicionRequest true "Estado destino"
// @Success 200 {object} correoResponse
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 409 {object} httpjson.ErrorBody
// @Router /correos/{correoID}/transiciones [post]
func transicionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transicionRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}
		c, err := svc.Transicionar(r.Context(), actorFrom(r), chi.URLParam(r, "correoID"), TransicionInput{
			Hacia:          Estado(strings.ToUpper(strings.TrimSpace(req.Estado))),
			Comentario:     req.Comentario,
			ResponsableID:  req.ResponsableID,
			RadicadoSalida: req.RadicadoSalida,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toCorreoResponse(c))
	}
}

// flujoHandler godoc
// @Summary Trazabilidad del correo
// @Tags correos
// @Produce json
// @Param correoID path string true "Correo"
// @Success 200 {array} flujoResponse
// @Router /correos/{correoID}/flujo [get]
func flujoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs, err := svc.Flujo(r.Context(), chi.URLParam(r, "correoID"))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]flujoResponse, 0, len(fs))
		for _, f := range fs {
			out = append(out, flujoResponse{
				ID:            f.ID,
				Etapa:         f.Etapa,
				UsuarioID:     f.UsuarioID,
				FechaInicio:   f.FechaInicio,
				FechaFin:      f.FechaFin,
				DuracionHoras: f.DuracionHoras,
				Comentario:    f.Comentario,
			})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func actorFrom(r *http.Request) Actor {
	claims, _ := middleware.GetClaims(r.Context())
	return Actor{UsuarioID: claims.UserID, Roles: claims.Roles}
}

func intParam(v string, def int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrInvalidInput
	}
	return n, nil
}

// WriteError traduce errores del módulo a status HTTP. Métricas y notificaciones lo reusan.
func WriteError(w http.ResponseWriter, err error) { writeError(w, err) }

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDominioNoPermitido):
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "correo not found")
	case errors.Is(err, ErrReferenceNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTransicionInvalida), errors.Is(err, ErrRadicadoDuplicado):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrForbidden):
		httpjson.Error(w, http.StatusForbidden, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toCorreoResponse(c Correo) correoResponse {
	return correoResponse{
		ID:               c.ID,
		Radicado:         c.Radicado,
		RadicadoSalida:   c.RadicadoSalida,
		Asunto:           c.Asunto,
		Remitente:        c.Remitente,
		Descripcion:      c.Descripcion,
		EntidadID:        c.EntidadID,
		TipoSolicitudID:  c.TipoSolicitudID,
		GestorID:         c.GestorID,
		Estado:           c.Estado,
		FechaRecepcion:   c.FechaRecepcion,
		FechaVencimiento: c.FechaVencimiento,
		FechaCierre:      c.FechaCierre,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toCorreoVistaResponse(v CorreoVista) correoVistaResponse {
	return correoVistaResponse{
		correoResponse:    toCorreoResponse(v.Correo),
		EntidadNombre:     v.EntidadNombre,
		TipoNombre:        v.TipoNombre,
		Urgencia:          v.Urgencia,
		PlazoDias:         v.PlazoDias,
		GestorNombre:      v.GestorNombre,
		DiasTranscurridos: v.DiasTranscurridos,
		DiasRestantes:     v.DiasRestantes,
		Vencido:           v.Vencido,
	}
}
