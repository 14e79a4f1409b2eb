package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Civics API",
        "description": "Citizen civic-issue reporting with email notifications",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Reports", "description": "Civic-issue report lifecycle"},
        {"name": "Health", "description": "Liveness probe"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Submit a civic-issue report",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateReportRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created, body {ok, id}"},
                    "400": {"description": "Missing or invalid fields"},
                    "500": {"description": "Unexpected error"}
                }
            }
        },
        "/api/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Fetch a single report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK, body {ok, report}"},
                    "404": {"description": "Report not found"},
                    "500": {"description": "Unexpected error"}
                }
            }
        },
        "/api/reports/{id}/status": {
            "post": {
                "tags": ["Reports"],
                "summary": "Update a report's status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateStatusRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK, body {ok}"},
                    "400": {"description": "Missing status"},
                    "404": {"description": "Report not found"},
                    "500": {"description": "Unexpected error"}
                }
            }
        },
        "/api/reports/user/{email}": {
            "get": {
                "tags": ["Reports"],
                "summary": "List reports submitted by an email address",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK, body {ok, reports}"},
                    "400": {"description": "Invalid email"},
                    "500": {"description": "Unexpected error"}
                }
            }
        }
    },
    "definitions": {
        "CreateReportRequest": {
            "type": "object",
            "required": ["title", "description", "reporterEmail"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "reporterEmail": {"type": "string"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"},
                "remarks": {"type": "string"}
            }
        },
        "Report": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "reporterEmail": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "remarks": {"type": "string"},
                "location": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
