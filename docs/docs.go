// Package docs registers the OpenAPI document served at /docs/doc.json.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "albapepper"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/players": {
            "get": {
                "description": "Returns every player the pipeline knows, with club history.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List players",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/handler.PlayerInfo"}
                        }
                    }
                }
            }
        },
        "/players/{player}/matches": {
            "get": {
                "description": "Returns the processed match log, optionally filtered to one season.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get player matches",
                "parameters": [
                    {"enum": ["messi", "lamine"], "type": "string", "description": "Player key", "name": "player", "in": "path", "required": true},
                    {"type": "string", "description": "Season label, e.g. 2011-2012", "name": "season", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MatchesResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/players/{player}/matches.csv": {
            "get": {
                "description": "Returns the processed match log in the configured delimited format.",
                "produces": ["text/csv"],
                "tags": ["players"],
                "summary": "Download player matches",
                "parameters": [
                    {"enum": ["messi", "lamine"], "type": "string", "description": "Player key", "name": "player", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/players/{player}/summary": {
            "get": {
                "description": "Returns goals, assists and minutes broken down by year, season, month, competition, venue, age and lineup.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get player summary",
                "parameters": [
                    {"enum": ["messi", "lamine"], "type": "string", "description": "Player key", "name": "player", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.Summary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.PlayerInfo": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "name": {"type": "string"},
                "birthdate": {"type": "string"},
                "provider": {"type": "string"},
                "national_team": {"type": "string"},
                "clubs": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.MatchRow": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "season": {"type": "string"},
                "age": {"type": "number"},
                "player_team": {"type": "string"},
                "home_away": {"type": "string"},
                "competition": {"type": "string"},
                "home_team": {"type": "string"},
                "result": {"type": "string"},
                "away_team": {"type": "string"},
                "opponent": {"type": "string"},
                "lineup": {"type": "string"},
                "minutes": {"type": "integer"},
                "goals": {"type": "integer"},
                "assists": {"type": "integer"},
                "cards": {"type": "integer"}
            }
        },
        "handler.MatchesResponse": {
            "type": "object",
            "properties": {
                "player": {"type": "string"},
                "season": {"type": "string"},
                "count": {"type": "integer"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/handler.MatchRow"}}
            }
        },
        "analysis.Summary": {
            "type": "object",
            "properties": {
                "player": {"type": "string"},
                "matches": {"type": "integer"},
                "goals": {"type": "integer"},
                "assists": {"type": "integer"},
                "minutes": {"type": "integer"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Match Logs API",
	Description:      "Read-only API over the processed per-player match logs and their summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
