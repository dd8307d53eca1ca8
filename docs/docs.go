// Package docs registra el documento OpenAPI servido en /swagger.
// Se mantiene a mano junto a las anotaciones @Router de los handlers;
// docs_test verifica que ambos declaren las mismas rutas.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/correos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["correos"],
                "summary": "Listar correos con filtros, orden y paginación",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "estado", "in": "query"},
                    {"type": "string", "name": "entidad_id", "in": "query"},
                    {"type": "string", "name": "gestor_id", "in": "query"},
                    {"type": "string", "name": "tipo_solicitud_id", "in": "query"},
                    {"type": "string", "name": "urgencia", "in": "query"},
                    {"type": "string", "name": "fecha_inicio", "in": "query"},
                    {"type": "string", "name": "fecha_fin", "in": "query"},
                    {"type": "string", "name": "ordenar_por", "in": "query"},
                    {"type": "string", "name": "direccion", "in": "query"},
                    {"type": "integer", "name": "pagina", "in": "query"},
                    {"type": "integer", "name": "tam_pagina", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["correos"],
                "summary": "Radicar correo entrante",
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/correos/{correoID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["correos"], "summary": "Correo con SLA", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["correos"], "summary": "Editar asunto, remitente o descripción", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["correos"], "summary": "Eliminar correo", "responses": {"204": {"description": "No Content"}}}
        },
        "/correos/{correoID}/asignar": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["correos"], "summary": "Asignar gestor", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/correos/{correoID}/transiciones": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["correos"], "summary": "Cambiar estado", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/correos/{correoID}/flujo": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["correos"], "summary": "Trazabilidad del correo", "responses": {"200": {"description": "OK"}}}
        },
        "/entidades": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["entidades"], "summary": "Listar entidades", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["entidades"], "summary": "Crear entidad", "responses": {"201": {"description": "Created"}}}
        },
        "/entidades/{entidadID}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["entidades"], "summary": "Eliminar entidad", "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/tipos-solicitud": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tipos"], "summary": "Listar tipos de solicitud", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tipos"], "summary": "Crear tipo de solicitud", "responses": {"201": {"description": "Created"}}}
        },
        "/tipos-solicitud/{tipoID}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["tipos"], "summary": "Eliminar tipo de solicitud", "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/usuarios": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["usuarios"], "summary": "Listar usuarios", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["usuarios"], "summary": "Crear usuario", "responses": {"201": {"description": "Created"}}}
        },
        "/usuarios/{usuarioID}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["usuarios"], "summary": "Eliminar usuario", "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/metricas": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["metricas"],
                "summary": "Métricas del tablero",
                "parameters": [{"type": "integer", "name": "meses", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/metricas/reporte.pdf": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/pdf"], "tags": ["metricas"], "summary": "Reporte PDF de métricas", "responses": {"200": {"description": "OK"}}}
        },
        "/notificaciones": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notificaciones"],
                "summary": "Notificaciones del usuario",
                "parameters": [{"type": "boolean", "name": "no_leidas", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notificaciones/count": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["notificaciones"], "summary": "Conteo de no leídas", "responses": {"200": {"description": "OK"}}}
        },
        "/notificaciones/leer-todas": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["notificaciones"], "summary": "Marcar todas como leídas", "responses": {"200": {"description": "OK"}}}
        },
        "/notificaciones/{notificacionID}/leer": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["notificaciones"], "summary": "Marcar una como leída", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo describe el documento que init registra en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Gestión de Correos API",
	Description:      "Radicación, flujo y seguimiento de plazos de correspondencia oficial.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
