// Package docs holds the Swagger document served under /api-docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/canciones": {
            "get": {
                "tags": ["canciones"],
                "summary": "Obtener todas las canciones",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Listado de canciones",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/entities.Song"}
                        }
                    },
                    "500": {
                        "description": "Error de almacenamiento",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            },
            "post": {
                "tags": ["canciones"],
                "summary": "Agregar una nueva canción",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Datos de la canción",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.CreateSongRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Canción agregada",
                        "schema": {"$ref": "#/definitions/entities.Song"}
                    },
                    "400": {
                        "description": "Campos requeridos vacíos",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            }
        },
        "/canciones/{id}": {
            "get": {
                "tags": ["canciones"],
                "summary": "Obtener una canción por ID",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "ID de la canción", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Canción encontrada",
                        "schema": {"$ref": "#/definitions/entities.Song"}
                    },
                    "404": {
                        "description": "Canción no encontrada",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            },
            "put": {
                "tags": ["canciones"],
                "summary": "Actualizar una canción por ID",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "ID de la canción", "name": "id", "in": "path", "required": true},
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Campos a modificar",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.UpdateSongRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Canción actualizada",
                        "schema": {"$ref": "#/definitions/entities.Song"}
                    },
                    "400": {
                        "description": "Campo suministrado vacío",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    },
                    "404": {
                        "description": "Canción no encontrada",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            },
            "delete": {
                "tags": ["canciones"],
                "summary": "Eliminar una canción por ID",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "ID de la canción", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Canción eliminada",
                        "schema": {"$ref": "#/definitions/entities.Song"}
                    },
                    "404": {
                        "description": "Canción no encontrada",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "Server is healthy"}
                }
            }
        }
    },
    "definitions": {
        "entities.Song": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cancion": {"type": "string"},
                "artista": {"type": "string"},
                "tono": {"type": "string"}
            }
        },
        "ports.CreateSongRequest": {
            "type": "object",
            "properties": {
                "cancion": {"type": "string", "example": "Gracias a la vida"},
                "artista": {"type": "string", "example": "Violeta Parra"},
                "tono": {"type": "string", "example": "Am"}
            }
        },
        "ports.UpdateSongRequest": {
            "type": "object",
            "properties": {
                "cancion": {"type": "string", "description": "Nombre de la canción"},
                "artista": {"type": "string", "description": "Artista de la canción"},
                "tono": {"type": "string", "description": "Tono de la canción"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Mi Repertorio API",
	Description:      "API para gestionar el repertorio de canciones",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
