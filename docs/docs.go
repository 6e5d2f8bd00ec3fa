// Package docs registers the swagger document served under /doc.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "BSD License",
            "url": "https://opensource.org/license/bsd-2-clause"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/computePath": {
            "post": {
                "description": "plans on a stored map (map_name) or an inline 0/1 grid. an unreachable end is answered with found=false.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["planner"],
                "summary": "shortest 8-connected path between two free cells",
                "parameters": [
                    {
                        "description": "plan request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/planRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PlanResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/computePaths": {
            "post": {
                "description": "every request is answered in order with either data or error.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["planner"],
                "summary": "batch of plan requests",
                "parameters": [
                    {
                        "description": "plan requests",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "requests": {"type": "array", "items": {"$ref": "#/definitions/planRequest"}}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/maps": {
            "get": {
                "produces": ["application/json"],
                "tags": ["planner"],
                "summary": "stored maps",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/MapInfo"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "upgrade to a websocket, every text frame is a computePath request body answered by one text frame",
                "tags": ["planner"],
                "summary": "websocket planning",
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "cell": {
            "type": "object",
            "properties": {
                "row": {"type": "integer"},
                "col": {"type": "integer"}
            }
        },
        "planRequest": {
            "type": "object",
            "required": ["start", "end"],
            "properties": {
                "map_name": {"type": "string"},
                "grid": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "start": {"$ref": "#/definitions/cell"},
                "end": {"$ref": "#/definitions/cell"},
                "solver": {"type": "string", "enum": ["bellman-ford", "dijkstra"]},
                "snap": {"type": "boolean"},
                "snap_radius": {"type": "number"},
                "initial_bearing": {"type": "number"}
            }
        },
        "PlanResponse": {
            "type": "object",
            "properties": {
                "start": {"$ref": "#/definitions/cell"},
                "end": {"$ref": "#/definitions/cell"},
                "path": {"type": "array", "items": {"$ref": "#/definitions/cell"}},
                "distance": {"type": "number"},
                "found": {"type": "boolean"},
                "polyline": {"type": "string"},
                "commands": {"type": "array", "items": {"type": "string", "enum": ["forward", "left", "right", "backward", "stop"]}},
                "rendered": {"type": "string"}
            }
        },
        "MapInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "rows": {"type": "integer"},
                "cols": {"type": "integer"},
                "free_cells": {"type": "integer"},
                "regions": {"type": "integer"}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:6060",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "roadfinder API",
	Description:      "shortest path planning on occupancy grids.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
