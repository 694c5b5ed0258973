// Package docs registers the swagger document served under /swagger.
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
        "/ping": {
            "get": {
                "description": "Returns a basic message",
                "produces": ["application/json"],
                "tags": ["test"],
                "summary": "Endpoint just pings the server",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}}}
            }
        },
        "/api/sessions": {
            "post": {
                "description": "Opens a session in the waiting phase with the caller as host",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Creates a new session",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/createSessionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/createResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/join": {
            "post": {
                "description": "Adds a player, or rejoins when player_id is already known to the session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Joins a session",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/joinSessionRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/joinResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/update-name": {
            "post": {
                "tags": ["sessions"],
                "summary": "Renames a player",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/updateNameRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/roll-rewards": {
            "post": {
                "description": "Host only. Moves the session to the selecting phase",
                "tags": ["sessions"],
                "summary": "Rolls rewards for every player",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/playerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/lock-selection": {
            "post": {
                "description": "One-shot. Completes the session once every active player has locked",
                "tags": ["sessions"],
                "summary": "Locks a player's selection",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/lockSelectionRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/update-candidates": {
            "post": {
                "tags": ["sessions"],
                "summary": "Stores a player's candidate payloads",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/updateCandidatesRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/force-advance": {
            "post": {
                "description": "Host only. Locks every unlocked player on their first candidate",
                "tags": ["sessions"],
                "summary": "Forces the session to complete",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/playerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/kick": {
            "post": {
                "description": "Host only. The player keeps their slot but stops counting as active",
                "tags": ["sessions"],
                "summary": "Kicks a player",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/kickRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/sessions/{code}": {
            "get": {
                "tags": ["sessions"],
                "summary": "Gives the state of a session",
                "parameters": [{"type": "string", "description": "Session code", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/packs/{code}": {
            "get": {
                "description": "Returns the bundle and reward display data behind a pack code",
                "tags": ["packs"],
                "summary": "Resolves a retrieval code",
                "parameters": [{"type": "string", "description": "Retrieval code", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "message": {"type": "object", "properties": {"message": {"type": "string"}}},
        "error": {"type": "object", "properties": {"error": {"type": "string"}, "kind": {"type": "string"}}},
        "session": {"type": "object"},
        "createSessionRequest": {"type": "object", "properties": {"host_name": {"type": "string"}, "rewards_per_player": {"type": "integer"}, "options": {"type": "object"}}},
        "createResult": {"type": "object", "properties": {"session_code": {"type": "string"}, "host_player_id": {"type": "string"}, "session": {"$ref": "#/definitions/session"}}},
        "joinSessionRequest": {"type": "object", "properties": {"session_code": {"type": "string"}, "player_name": {"type": "string"}, "player_id": {"type": "string"}}},
        "joinResult": {"type": "object", "properties": {"player_id": {"type": "string"}, "session": {"$ref": "#/definitions/session"}}},
        "playerRequest": {"type": "object", "properties": {"session_code": {"type": "string"}, "player_id": {"type": "string"}}},
        "updateNameRequest": {"type": "object", "properties": {"session_code": {"type": "string"}, "player_id": {"type": "string"}, "name": {"type": "string"}}},
        "lockSelectionRequest": {"type": "object", "properties": {"session_code": {"type": "string"}, "player_id": {"type": "string"}, "selection_url": {"type": "string"}, "selection_data": {"type": "object"}, "selected_index": {"type": "integer"}}},
        "updateCandidatesRequest": {"type": "object", "properties": {"session_code": {"type": "string"}, "player_id": {"type": "string"}, "candidates": {"type": "array", "items": {"type": "object"}}}},
        "kickRequest": {"type": "object", "properties": {"session_code": {"type": "string"}, "player_id": {"type": "string"}, "target_player_id": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Perkdraft API",
	Description:      "Gin-Gonic server for Perkdraft reward sessions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
