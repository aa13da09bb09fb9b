// Package tollgate holds the Swagger document served at /swagger/.
package tollgate

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/tollgate"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/oauth/token": {
            "post": {
                "description": "Exchanges client credentials, sent as request headers, for a bearer token.",
                "produces": ["application/json"],
                "tags": ["OAuth"],
                "summary": "Issue an access token",
                "parameters": [
                    {"type": "string", "description": "Client identifier (client-id is also accepted)", "name": "client_id", "in": "header", "required": true},
                    {"type": "string", "description": "Client secret (client-secret is also accepted)", "name": "client_secret", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "access_token, token_type, expires_in",
                        "schema": {"$ref": "#/definitions/tollsdk.TokenResponse"},
                        "headers": {"Cache-Control": {"type": "string", "description": "no-store"}}
                    },
                    "400": {"description": "missing credentials", "schema": {"$ref": "#/definitions/tollsdk.Error"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/tollsdk.Error"}},
                    "429": {"description": "rate limited", "schema": {"$ref": "#/definitions/tollsdk.Error"}},
                    "500": {"description": "token store unavailable", "schema": {"$ref": "#/definitions/tollsdk.Error"}}
                }
            }
        },
        "/oauth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Deletes the server-side record of the bearer token. Later requests with it fail.",
                "produces": ["application/json"],
                "tags": ["OAuth"],
                "summary": "Revoke the presented token",
                "responses": {
                    "200": {"description": "Token revoked", "schema": {"$ref": "#/definitions/tollsdk.MessageResponse"}},
                    "401": {"description": "missing, invalid, expired or revoked token", "schema": {"$ref": "#/definitions/tollsdk.Error"}},
                    "500": {"description": "token store unavailable", "schema": {"$ref": "#/definitions/tollsdk.Error"}}
                }
            }
        },
        "/data": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the caller's decoded token claims and stored token metadata.",
                "produces": ["application/json"],
                "tags": ["Data"],
                "summary": "Protected demo resource",
                "responses": {
                    "200": {"description": "message, user, token, data, timestamp", "schema": {"$ref": "#/definitions/tollsdk.DataResponse"}},
                    "401": {"description": "missing, invalid, expired or revoked token", "schema": {"$ref": "#/definitions/tollsdk.Error"}},
                    "500": {"description": "token store unavailable", "schema": {"$ref": "#/definitions/tollsdk.Error"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Always answers 200 while the process is serving.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "status, timestamp, app", "schema": {"$ref": "#/definitions/tollsdk.StatusResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Returns uptime and version. Always 200 if the process is running.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/tollsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Pings the client database and the token store.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/tollsdk.HealthResponse"}},
                    "503": {"description": "one or more dependencies are down", "schema": {"$ref": "#/definitions/tollsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "tollsdk.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "Bearer"},
                "expires_in": {"type": "integer", "example": 3600}
            }
        },
        "tollsdk.Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Invalid credentials"},
                "message": {"type": "string"},
                "kind": {
                    "type": "string",
                    "enum": ["missing_credentials", "invalid_credentials", "missing_token", "token_not_found_or_expired", "token_expired", "token_invalid", "server_error", "rate_limited"]
                }
            }
        },
        "tollsdk.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "Token revoked"}}
        },
        "tollsdk.TokenClaims": {
            "type": "object",
            "properties": {
                "sub": {"type": "string"},
                "client_id": {"type": "string"},
                "type": {"type": "string", "example": "access_token"},
                "iss": {"type": "string"},
                "jti": {"type": "string"},
                "iat": {"type": "integer"},
                "exp": {"type": "integer"}
            }
        },
        "tollsdk.TokenMetadata": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string"},
                "issuedAt": {"type": "integer", "description": "epoch milliseconds"},
                "expiresAt": {"type": "integer", "description": "epoch milliseconds"}
            }
        },
        "tollsdk.DataResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/tollsdk.TokenClaims"},
                "token": {"$ref": "#/definitions/tollsdk.TokenMetadata"},
                "data": {"type": "array", "items": {"type": "object"}},
                "timestamp": {"type": "string"}
            }
        },
        "tollsdk.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"},
                "timestamp": {"type": "string"},
                "app": {"type": "string"}
            }
        },
        "tollsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "token_store": {"type": "string"}
            }
        },
        "tollsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/tollsdk.HealthChecks"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Access token from /oauth/token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Tollgate Token Service API",
	Description:      "Issues, validates and revokes short-lived HS256 bearer tokens for registered clients.\nEvery token has a server-side record; revoking the record kills the token immediately.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
