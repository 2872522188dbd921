// Package docs registers the gateway's OpenAPI description with swag so
// echo-swagger can serve it at /swagger/*. Regenerate with
// `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Phone number and password",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/session/menu": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Role-filtered menu",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.menuResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard summary",
                "parameters": [
                    {"type": "string", "description": "Day as YYYY-MM-DD, defaults to today (UTC)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DashboardSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/installments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["installments"],
                "summary": "Record an installment",
                "parameters": [
                    {
                        "description": "Installment",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.installmentRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/{resource}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Upstream resource proxy",
                "parameters": [
                    {"type": "string", "description": "customers, loans, installments, line-types, loan-types, users, expenses or expenses-types", "name": "resource", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/tenants": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tenants"],
                "summary": "Create a company",
                "parameters": [
                    {
                        "description": "Company and admin user",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.tenantRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shell/config": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shell"],
                "summary": "Mobile shell configuration",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/shell/resolve": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shell"],
                "summary": "Resolve a link",
                "parameters": [
                    {"type": "string", "description": "Link to resolve", "name": "url", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {"tags": ["ops"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.MenuItem": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "label": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "domain.DashboardSummary": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "totalCustomers": {"type": "integer"},
                "activeLoans": {"type": "integer"},
                "collectionsToday": {"type": "number"},
                "cashInHandToday": {"type": "number"},
                "cashInOnlineToday": {"type": "number"},
                "overdueInstallments": {"type": "integer"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "phoneNumber": {"type": "string", "example": "9999999999"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "user": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "manager", "collector", "none"]},
                "menu": {"type": "array", "items": {"$ref": "#/definitions/domain.MenuItem"}}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["bootstrapping", "authenticated", "unauthenticated"]},
                "authenticated": {"type": "boolean"},
                "user": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.menuResponse": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.MenuItem"}}
            }
        },
        "handler.installmentRequest": {
            "type": "object",
            "required": ["loanId"],
            "properties": {
                "loanId": {"type": "string"},
                "amount": {"type": "number"},
                "online": {"type": "boolean"},
                "cashInOnline": {"type": "number"},
                "paidAt": {"type": "string", "format": "date-time"},
                "note": {"type": "string"}
            }
        },
        "handler.tenantRequest": {
            "type": "object",
            "required": ["name", "phoneNumber", "adminName", "adminEmail", "adminPassword", "adminPhone"],
            "properties": {
                "name": {"type": "string"},
                "phoneNumber": {"type": "string", "example": "+919999999999"},
                "isActive": {"type": "boolean"},
                "adminName": {"type": "string"},
                "adminEmail": {"type": "string"},
                "adminPassword": {"type": "string", "minLength": 6},
                "adminPhone": {"type": "string"}
            }
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "microfin gateway",
	Description:      "Session and role gateway in front of the ELF Finance API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
