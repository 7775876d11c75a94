// Package docs registra la definición OpenAPI servida en /swagger/*.
// Se regenera con: swag init -g cmd/api/main.go -o internal/docs
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
        "/api/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas con filtros",
                "parameters": [
                    {"type": "string", "name": "species", "in": "query"},
                    {"type": "string", "name": "size", "in": "query"},
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/pets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Detalle de mascota con su refugio",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/api/shelters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shelters"],
                "summary": "Listar refugios",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/shelters/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shelters"],
                "summary": "Detalle de refugio",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/favorites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Favoritos del usuario",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Agregar favorito",
                "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/favorites/{petId}": {
            "delete": {
                "tags": ["favorites"],
                "summary": "Quitar favorito",
                "parameters": [{"type": "integer", "name": "petId", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/favorites/{petId}/check": {
            "get": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Consultar si una mascota es favorita",
                "parameters": [{"type": "integer", "name": "petId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/applications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Solicitudes del usuario",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Crear solicitud de adopción",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/auth/user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Perfil del usuario autenticado",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Actualizar perfil",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/seed": {
            "post": {
                "produces": ["application/json"],
                "tags": ["seed"],
                "summary": "Cargar datos de demo",
                "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}, "500": {"description": "Internal Server Error"}}
            }
        }
    },
    "definitions": {
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo contiene los metadatos exportados del API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Adoption API",
	Description:      "Catálogo de mascotas en adopción, favoritos y solicitudes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
