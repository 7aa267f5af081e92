// Package docs registers the OpenAPI description served at /swagger.
// Regenerate the paths with `swag init -g cmd/server/main.go`.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Home screen",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/register": {
            "post": {
                "tags": ["web"],
                "summary": "Register a new user",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/login": {
            "post": {
                "tags": ["web"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/logout": {
            "post": {
                "tags": ["web"],
                "summary": "Logout",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/profile/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Profile posts",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/profile/{username}/followers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Profile followers",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/profile/{username}/following": {
            "get": {
                "produces": ["application/json"],
                "tags": ["web"],
                "summary": "Profile following",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/addFollow/{username}": {
            "post": {
                "tags": ["web"],
                "summary": "Follow a user",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/removeFollow/{username}": {
            "post": {
                "tags": ["web"],
                "summary": "Unfollow a user",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/create-post": {
            "post": {
                "tags": ["web"],
                "summary": "Create a post",
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "body", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/doesUsernameExist": {
            "post": {
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Username availability",
                "responses": {"200": {"description": "OK", "schema": {"type": "boolean"}}}
            }
        },
        "/doesEmailExist": {
            "post": {
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Email availability",
                "responses": {"200": {"description": "OK", "schema": {"type": "boolean"}}}
            }
        },
        "/api/login": {
            "post": {
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "API login",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "signed token", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/postsByAuthor/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Posts by author",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/create-post": {
            "post": {
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Create a post (API)",
                "parameters": [
                    {"type": "string", "name": "token", "in": "formData", "required": true},
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "body", "in": "formData", "required": true}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Social Network API",
	Description:      "Registration, sessions, profiles, posts and follows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
