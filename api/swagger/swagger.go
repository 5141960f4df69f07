package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IP Reputation Checker",
        "description": "Authentication service and reputation lookup gateway",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration, login, and token verification"},
        {"name": "Reputation", "description": "Bearer-gated IP reputation lookups"},
        {"name": "Health", "description": "Liveness"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Backing store unreachable"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CredentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Username already registered", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CredentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/verify-token": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Verify the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/VerifyResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/check-reputation/{ip}": {
            "get": {
                "tags": ["Reputation"],
                "summary": "Check IP reputation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "ip", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Geolocation fields plus reputation label"},
                    "400": {"description": "Invalid or private IP address", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "502": {"description": "Lookup service unavailable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/check-ip/{ip}": {
            "get": {
                "tags": ["Reputation"],
                "summary": "Check IP reputation (gateway route)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "ip", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Geolocation fields plus reputation label"},
                    "400": {"description": "Invalid or private IP address", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "502": {"description": "Lookup service unavailable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CredentialsRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "minLength": 3, "maxLength": 50},
                "password": {"type": "string", "minLength": 8, "maxLength": 128}
            },
            "required": ["username", "password"]
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "VerifyResponse": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
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
