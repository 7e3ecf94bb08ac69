// Package docs holds the OpenAPI description served at /swagger.
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
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.RegisterRequest"
						}
					}
				]
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.LoginRequest"
						}
					}
				]
			}
		},
		"/auth/refresh": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Refresh tokens",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.RefreshRequest"
						}
					}
				]
			}
		},
		"/profile": {
			"get": {
				"tags": [
					"user"
				],
				"summary": "Get user profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/two-factor": {
			"put": {
				"tags": [
					"user"
				],
				"summary": "Toggle two-factor authentication",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.TwoFactorRequest"
						}
					}
				]
			}
		},
		"/financial-status": {
			"get": {
				"tags": [
					"financial-status"
				],
				"summary": "Get financial status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"financial-status"
				],
				"summary": "Create financial status",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.GrossSalaryRequest"
						}
					}
				]
			},
			"put": {
				"tags": [
					"financial-status"
				],
				"summary": "Update gross salary",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.GrossSalaryRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"financial-status"
				],
				"summary": "Delete financial status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/financial-status/summary": {
			"get": {
				"tags": [
					"financial-status"
				],
				"summary": "Financial summary",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/financial-status/recalculate": {
			"post": {
				"tags": [
					"financial-status"
				],
				"summary": "Recalculate aggregates",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/tips": {
			"get": {
				"tags": [
					"tips"
				],
				"summary": "List financial tips",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"tips"
				],
				"summary": "Create a financial tip",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.TipRequest"
						}
					}
				]
			}
		},
		"/tips/{id}": {
			"get": {
				"tags": [
					"tips"
				],
				"summary": "Get a financial tip",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"tips"
				],
				"summary": "Update a financial tip",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.TipRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"tips"
				],
				"summary": "Delete a financial tip",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/admin/users": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/admin/users/{id}/active": {
			"put": {
				"tags": [
					"admin"
				],
				"summary": "Activate or deactivate a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetActiveRequest"
						}
					}
				]
			}
		},
		"/admin/users/{id}": {
			"delete": {
				"tags": [
					"admin"
				],
				"summary": "Delete a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/income-sources": {
			"get": {
				"tags": [
					"income-sources"
				],
				"summary": "List income sources",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"income-sources"
				],
				"summary": "Create a income source",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.IncomeSourceRequest"
						}
					}
				]
			}
		},
		"/income-sources/{id}": {
			"get": {
				"tags": [
					"income-sources"
				],
				"summary": "Get a income source",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"income-sources"
				],
				"summary": "Update a income source",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.IncomeSourceRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"income-sources"
				],
				"summary": "Delete a income source",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/debts": {
			"get": {
				"tags": [
					"debts"
				],
				"summary": "List debts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"debts"
				],
				"summary": "Create a debt",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.DebtRequest"
						}
					}
				]
			}
		},
		"/debts/{id}": {
			"get": {
				"tags": [
					"debts"
				],
				"summary": "Get a debt",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"debts"
				],
				"summary": "Update a debt",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.DebtRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"debts"
				],
				"summary": "Delete a debt",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/monthly-expenses": {
			"get": {
				"tags": [
					"monthly-expenses"
				],
				"summary": "List monthly expenses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"monthly-expenses"
				],
				"summary": "Create a monthly expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.MonthlyExpenseRequest"
						}
					}
				]
			}
		},
		"/monthly-expenses/{id}": {
			"get": {
				"tags": [
					"monthly-expenses"
				],
				"summary": "Get a monthly expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"monthly-expenses"
				],
				"summary": "Update a monthly expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.MonthlyExpenseRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"monthly-expenses"
				],
				"summary": "Delete a monthly expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/savings": {
			"get": {
				"tags": [
					"savings"
				],
				"summary": "List savings plans",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"savings"
				],
				"summary": "Create a savings plan",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SavingsPlanRequest"
						}
					}
				]
			}
		},
		"/savings/{id}": {
			"get": {
				"tags": [
					"savings"
				],
				"summary": "Get a savings plan",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"savings"
				],
				"summary": "Update a savings plan",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SavingsPlanRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"savings"
				],
				"summary": "Delete a savings plan",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/financial-goals": {
			"get": {
				"tags": [
					"financial-goals"
				],
				"summary": "List financial goals",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"financial-goals"
				],
				"summary": "Create a financial goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.FinancialGoalRequest"
						}
					}
				]
			}
		},
		"/financial-goals/{id}": {
			"get": {
				"tags": [
					"financial-goals"
				],
				"summary": "Get a financial goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"financial-goals"
				],
				"summary": "Update a financial goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.FinancialGoalRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"financial-goals"
				],
				"summary": "Delete a financial goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/investments": {
			"get": {
				"tags": [
					"investments"
				],
				"summary": "List investments",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"investments"
				],
				"summary": "Create a investment",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.InvestmentRequest"
						}
					}
				]
			}
		},
		"/investments/{id}": {
			"get": {
				"tags": [
					"investments"
				],
				"summary": "Get a investment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"investments"
				],
				"summary": "Update a investment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.InvestmentRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"investments"
				],
				"summary": "Delete a investment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		}
	},
	"definitions": {
		"handlers.ErrorDetail": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"field": {
					"type": "string"
				}
			}
		},
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/handlers.ErrorDetail"
				}
			}
		},
		"handlers.RegisterRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handlers.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handlers.RefreshRequest": {
			"type": "object",
			"properties": {
				"refresh_token": {
					"type": "string"
				}
			},
			"required": [
				"refresh_token"
			]
		},
		"handlers.TwoFactorRequest": {
			"type": "object",
			"properties": {
				"enabled": {
					"type": "boolean"
				}
			},
			"required": [
				"enabled"
			]
		},
		"handlers.SetActiveRequest": {
			"type": "object",
			"properties": {
				"is_active": {
					"type": "boolean"
				}
			},
			"required": [
				"is_active"
			]
		},
		"handlers.GrossSalaryRequest": {
			"type": "object",
			"properties": {
				"gross_salary": {
					"type": "string"
				}
			}
		},
		"handlers.TipRequest": {
			"type": "object",
			"properties": {
				"advice_title": {
					"type": "string"
				},
				"advice_content": {
					"type": "string"
				},
				"category": {
					"type": "string"
				}
			},
			"required": [
				"advice_title",
				"category"
			]
		},
		"handlers.IncomeSourceRequest": {
			"type": "object",
			"properties": {
				"income_source": {
					"type": "string"
				},
				"income_amount": {
					"type": "string"
				},
				"frequency": {
					"type": "string"
				}
			}
		},
		"handlers.DebtRequest": {
			"type": "object",
			"properties": {
				"debt_name": {
					"type": "string"
				},
				"debt_amount": {
					"type": "string"
				},
				"debt_frequency": {
					"type": "string"
				},
				"debt_due_date": {
					"type": "string"
				}
			},
			"required": [
				"debt_due_date"
			]
		},
		"handlers.MonthlyExpenseRequest": {
			"type": "object",
			"properties": {
				"expense_name": {
					"type": "string"
				},
				"estimated_expenses_cost": {
					"type": "string"
				},
				"actual_expenses_cost": {
					"type": "string"
				},
				"frequency": {
					"type": "string"
				}
			}
		},
		"handlers.SavingsPlanRequest": {
			"type": "object",
			"properties": {
				"savings_plan_title": {
					"type": "string"
				},
				"planned_amount": {
					"type": "string"
				},
				"actual_amount": {
					"type": "string"
				},
				"frequency": {
					"type": "string"
				},
				"savings_term": {
					"type": "string"
				}
			},
			"required": [
				"savings_term"
			]
		},
		"handlers.FinancialGoalRequest": {
			"type": "object",
			"properties": {
				"goal_title": {
					"type": "string"
				},
				"target_amount": {
					"type": "string"
				},
				"current_amount": {
					"type": "string"
				},
				"goal_deadline": {
					"type": "string"
				}
			},
			"required": [
				"goal_deadline"
			]
		},
		"handlers.InvestmentRequest": {
			"type": "object",
			"properties": {
				"investment_type": {
					"type": "string"
				},
				"amount_invested": {
					"type": "string"
				},
				"currently_invested": {
					"type": "string"
				},
				"return_rate": {
					"type": "string"
				}
			},
			"required": [
				"investment_type"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fintrack API",
	Description:      "Fintrack tracks a user's income, debts, expenses, savings, goals and investments and keeps the totals of their financial status up to date.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
