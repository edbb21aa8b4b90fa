// Package docs holds the OpenAPI document for the provider stub, served
// under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/frontauth"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "definitions": {
        "http.HealthChecks": {
            "properties": {
                "signer": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.HealthResponse": {
            "properties": {
                "checks": {
                    "$ref": "#/definitions/http.HealthChecks"
                },
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.devBrowserResponse": {
            "properties": {
                "id": {
                    "type": "string"
                },
                "token": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.tokenResponse": {
            "properties": {
                "jwt": {
                    "type": "string"
                },
                "object": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "httpx.APIError": {
            "properties": {
                "code": {
                    "type": "string"
                },
                "long_message": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "meta": {
                    "$ref": "#/definitions/httpx.ErrorMeta"
                }
            },
            "type": "object"
        },
        "httpx.BodyMeta": {
            "properties": {
                "client": {}
            },
            "type": "object"
        },
        "httpx.Envelope": {
            "properties": {
                "client": {},
                "response": {}
            },
            "type": "object"
        },
        "httpx.ErrorBody": {
            "properties": {
                "errors": {
                    "items": {
                        "$ref": "#/definitions/httpx.APIError"
                    },
                    "type": "array"
                },
                "meta": {
                    "$ref": "#/definitions/httpx.BodyMeta"
                }
            },
            "type": "object"
        },
        "httpx.ErrorMeta": {
            "properties": {
                "param_name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "jwtx.JWK": {
            "properties": {
                "alg": {
                    "type": "string"
                },
                "crv": {
                    "type": "string"
                },
                "kid": {
                    "type": "string"
                },
                "kty": {
                    "type": "string"
                },
                "use": {
                    "type": "string"
                },
                "x": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "jwtx.JWKS": {
            "properties": {
                "keys": {
                    "items": {
                        "$ref": "#/definitions/jwtx.JWK"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        }
    },
    "paths": {
        "/livez": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.HealthResponse"
                        }
                    }
                },
                "summary": "Liveness check",
                "tags": [
                    "System"
                ]
            }
        },
        "/readyz": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "No signing key loaded",
                        "schema": {
                            "$ref": "#/definitions/http.HealthResponse"
                        }
                    }
                },
                "summary": "Readiness check",
                "tags": [
                    "System"
                ]
            }
        },
        "/v1/client": {
            "get": {
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Client record, or null without one",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    }
                },
                "summary": "Get the client",
                "tags": [
                    "Client"
                ]
            }
        },
        "/v1/client/sessions": {
            "delete": {
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Client with no active sessions",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    }
                },
                "summary": "End every session on the client",
                "tags": [
                    "Client"
                ]
            }
        },
        "/v1/client/sessions/{sid}/remove": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Session id",
                        "in": "path",
                        "name": "sid",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Removed session",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Sign out of a session",
                "tags": [
                    "Sessions"
                ]
            }
        },
        "/v1/client/sessions/{sid}/tokens": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Session id",
                        "in": "path",
                        "name": "sid",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Organization claim override",
                        "in": "formData",
                        "name": "organization_id",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Signed session token",
                        "schema": {
                            "$ref": "#/definitions/http.tokenResponse"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Mint a session token",
                "tags": [
                    "Sessions"
                ]
            }
        },
        "/v1/client/sessions/{sid}/tokens/{template}": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Session id",
                        "in": "path",
                        "name": "sid",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "JWT template name",
                        "in": "path",
                        "name": "template",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Organization claim override",
                        "in": "formData",
                        "name": "organization_id",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Signed session token",
                        "schema": {
                            "$ref": "#/definitions/http.tokenResponse"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Mint a session token",
                "tags": [
                    "Sessions"
                ]
            }
        },
        "/v1/client/sessions/{sid}/touch": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "description": "Extends the session and optionally switches the active organization.",
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Session id",
                        "in": "path",
                        "name": "sid",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Organization to make active; empty clears it",
                        "in": "formData",
                        "name": "active_organization_id",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Session",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Touch a session",
                "tags": [
                    "Sessions"
                ]
            }
        },
        "/v1/client/sign_ins": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Email address, phone number or username",
                        "in": "formData",
                        "name": "identifier",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "First factor strategy",
                        "in": "formData",
                        "name": "strategy",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Password for the password strategy",
                        "in": "formData",
                        "name": "password",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-in attempt",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Start a sign-in",
                "tags": [
                    "Sign-ins"
                ]
            }
        },
        "/v1/client/sign_ins/{id}/attempt_first_factor": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-in id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Factor strategy",
                        "in": "formData",
                        "name": "strategy",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Password",
                        "in": "formData",
                        "name": "password",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Verification code",
                        "in": "formData",
                        "name": "code",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-in attempt, complete once verified",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Attempt a first factor",
                "tags": [
                    "Sign-ins"
                ]
            }
        },
        "/v1/client/sign_ins/{id}/attempt_second_factor": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-in id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Factor strategy",
                        "in": "formData",
                        "name": "strategy",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Verification code",
                        "in": "formData",
                        "name": "code",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-in attempt, complete once verified",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Attempt a second factor",
                "tags": [
                    "Sign-ins"
                ]
            }
        },
        "/v1/client/sign_ins/{id}/prepare_first_factor": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-in id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Factor strategy",
                        "in": "formData",
                        "name": "strategy",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Email address to send a code to",
                        "in": "formData",
                        "name": "email_address_id",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Phone number to send a code to",
                        "in": "formData",
                        "name": "phone_number_id",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-in attempt",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Prepare a first factor",
                "tags": [
                    "Sign-ins"
                ]
            }
        },
        "/v1/client/sign_ins/{id}/prepare_second_factor": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-in id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Factor strategy",
                        "in": "formData",
                        "name": "strategy",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Phone number to send a code to",
                        "in": "formData",
                        "name": "phone_number_id",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-in attempt",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Prepare a second factor",
                "tags": [
                    "Sign-ins"
                ]
            }
        },
        "/v1/client/sign_ups": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Email address",
                        "in": "formData",
                        "name": "email_address",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Phone number",
                        "in": "formData",
                        "name": "phone_number",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Username",
                        "in": "formData",
                        "name": "username",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Password",
                        "in": "formData",
                        "name": "password",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "First name",
                        "in": "formData",
                        "name": "first_name",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Last name",
                        "in": "formData",
                        "name": "last_name",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-up attempt",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Start a sign-up",
                "tags": [
                    "Sign-ups"
                ]
            }
        },
        "/v1/client/sign_ups/{id}": {
            "patch": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-up id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Email address",
                        "in": "formData",
                        "name": "email_address",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Phone number",
                        "in": "formData",
                        "name": "phone_number",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Username",
                        "in": "formData",
                        "name": "username",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Password",
                        "in": "formData",
                        "name": "password",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "First name",
                        "in": "formData",
                        "name": "first_name",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Last name",
                        "in": "formData",
                        "name": "last_name",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-up attempt",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Update a sign-up",
                "tags": [
                    "Sign-ups"
                ]
            }
        },
        "/v1/client/sign_ups/{id}/attempt_verification": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-up id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "email_code or phone_code",
                        "in": "formData",
                        "name": "strategy",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Verification code",
                        "in": "formData",
                        "name": "code",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-up attempt, complete once every field is verified",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Attempt a sign-up verification",
                "tags": [
                    "Sign-ups"
                ]
            }
        },
        "/v1/client/sign_ups/{id}/prepare_verification": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Sign-up id",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "email_code or phone_code",
                        "in": "formData",
                        "name": "strategy",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sign-up attempt",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Send a sign-up verification",
                "tags": [
                    "Sign-ups"
                ]
            }
        },
        "/v1/dev_browser": {
            "post": {
                "description": "Development instances only. The returned token identifies the client on later requests.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Dev browser token",
                        "schema": {
                            "$ref": "#/definitions/http.devBrowserResponse"
                        }
                    }
                },
                "summary": "Bootstrap a development browser",
                "tags": [
                    "Client"
                ]
            }
        },
        "/v1/jwks": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Public signing keys",
                        "schema": {
                            "$ref": "#/definitions/jwtx.JWKS"
                        }
                    }
                },
                "summary": "JSON Web Key Set",
                "tags": [
                    "System"
                ]
            }
        },
        "/v1/me": {
            "get": {
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "User",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Get the signed-in user",
                "tags": [
                    "User"
                ]
            },
            "patch": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Username",
                        "in": "formData",
                        "name": "username",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "First name",
                        "in": "formData",
                        "name": "first_name",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Last name",
                        "in": "formData",
                        "name": "last_name",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Email address to make primary",
                        "in": "formData",
                        "name": "primary_email_address_id",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Updated user",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Update the signed-in user",
                "tags": [
                    "User"
                ]
            }
        },
        "/v1/me/organization_memberships": {
            "get": {
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Memberships of the signed-in user",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "List organization memberships",
                "tags": [
                    "Organizations"
                ]
            }
        },
        "/v1/organizations": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "description": "The creator becomes its admin.",
                "parameters": [
                    {
                        "description": "Frontend API version",
                        "in": "query",
                        "name": "__clerk_api_version",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Organization name",
                        "in": "formData",
                        "name": "name",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "URL slug",
                        "in": "formData",
                        "name": "slug",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Organization",
                        "schema": {
                            "$ref": "#/definitions/httpx.Envelope"
                        }
                    },
                    "401": {
                        "description": "No signed-in session",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "422": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                },
                "summary": "Create an organization",
                "tags": [
                    "Organizations"
                ]
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Frontauth Provider Stub API",
	Description:      "In-memory implementation of the hosted identity provider's Frontend API, for tests and local development.\n\nFrontend routes take form-encoded bodies, require the __clerk_api_version query parameter and answer with a {response, client} envelope.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
