// Package docs is the OpenAPI description served at /swagger. Regenerate with
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
        "/v1/auth/register": {"post": {"tags": ["auth"], "summary": "Register an employee", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterEmployeeRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.EmployeeResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.APIError"}}}}},
        "/v1/auth/login": {"post": {"tags": ["auth"], "summary": "Authenticate with document and secret", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.APIError"}}}}},
        "/v1/products": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "List the catalog in creation order", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Register a product", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProductRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductResponse"}}}}
        },
        "/v1/products/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Get a product with its stock", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}}}},
        "/v1/products/{id}/price": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Price check (cached name and price)", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PriceLookupResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Change a product's price", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePriceRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}}}}
        },
        "/v1/sessions/open": {"post": {"security": [{"BearerAuth": []}], "tags": ["sessions"], "summary": "Open the cash drawer", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.APIError"}}}}},
        "/v1/sessions/current": {"get": {"security": [{"BearerAuth": []}], "tags": ["sessions"], "summary": "The open drawer session, if any", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}, "204": {"description": "No Content"}}}},
        "/v1/sessions/{id}/close": {"post": {"security": [{"BearerAuth": []}], "tags": ["sessions"], "summary": "Close a drawer session and return its report", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CloseSessionResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.APIError"}}}}},
        "/v1/sessions/{id}/report": {"get": {"security": [{"BearerAuth": []}], "tags": ["sessions"], "summary": "Sales report of a session (open or closed)", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionReport"}}}}},
        "/v1/sales": {"post": {"security": [{"BearerAuth": []}], "tags": ["sales"], "summary": "Record a sale in an open session", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SellRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SaleResponse"}}, "400": {"description": "Empty cart or bad quantity", "schema": {"$ref": "#/definitions/apierror.APIError"}}, "404": {"description": "Unknown product", "schema": {"$ref": "#/definitions/apierror.APIError"}}, "409": {"description": "No open session or insufficient stock", "schema": {"$ref": "#/definitions/apierror.APIError"}}}}},
        "/v1/sales/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["sales"], "summary": "Get a sale with its items", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaleResponse"}}}}}
    },
    "definitions": {
        "apierror.APIError": {"type": "object", "properties": {"detail": {"type": "string"}, "session_id": {"type": "integer"}}},
        "dto.RegisterEmployeeRequest": {"type": "object", "required": ["name", "document", "secret"], "properties": {"name": {"type": "string"}, "document": {"type": "string"}, "secret": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["document", "secret"], "properties": {"document": {"type": "string"}, "secret": {"type": "string"}}},
        "dto.EmployeeResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "document": {"type": "string"}}},
        "dto.LoginResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_in": {"type": "integer"}, "employee": {"$ref": "#/definitions/dto.EmployeeResponse"}}},
        "dto.CreateProductRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "unit_price": {"type": "string"}, "stock_quantity": {"type": "integer"}}},
        "dto.UpdatePriceRequest": {"type": "object", "properties": {"unit_price": {"type": "string"}}},
        "dto.ProductResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "unit_price": {"type": "string"}, "stock_quantity": {"type": "integer"}}},
        "dto.PriceLookupResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "unit_price": {"type": "string"}}},
        "dto.SessionResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "opened_by": {"type": "integer"}, "opened_at": {"type": "string"}, "closed_at": {"type": "string"}, "open": {"type": "boolean"}}},
        "dto.EmployeeBreakdown": {"type": "object", "properties": {"employee_id": {"type": "integer"}, "employee_name": {"type": "string"}, "sale_count": {"type": "integer"}, "gross_subtotal": {"type": "string"}}},
        "dto.SessionReport": {"type": "object", "properties": {"session_id": {"type": "integer"}, "opened_by": {"type": "integer"}, "opened_by_name": {"type": "string"}, "opened_at": {"type": "string"}, "closed_at": {"type": "string"}, "sale_count": {"type": "integer"}, "gross_total": {"type": "string"}, "net_of_tax_total": {"type": "string"}, "tax_total": {"type": "string"}, "per_employee": {"type": "array", "items": {"$ref": "#/definitions/dto.EmployeeBreakdown"}}}},
        "dto.CloseSessionResponse": {"type": "object", "properties": {"session": {"$ref": "#/definitions/dto.SessionResponse"}, "report": {"$ref": "#/definitions/dto.SessionReport"}}},
        "dto.Pick": {"type": "object", "required": ["product_id", "quantity"], "properties": {"product_id": {"type": "integer"}, "quantity": {"type": "integer"}}},
        "dto.SellRequest": {"type": "object", "required": ["session_id", "picks"], "properties": {"session_id": {"type": "integer"}, "picks": {"type": "array", "items": {"$ref": "#/definitions/dto.Pick"}}}},
        "dto.SaleItemResponse": {"type": "object", "properties": {"product_id": {"type": "integer"}, "product": {"type": "string"}, "quantity": {"type": "integer"}, "unit_price": {"type": "string"}, "subtotal": {"type": "string"}}},
        "dto.SaleResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "session_id": {"type": "integer"}, "employee_id": {"type": "integer"}, "items": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleItemResponse"}}, "gross_total": {"type": "string"}, "net_of_tax_total": {"type": "string"}, "tax_total": {"type": "string"}, "sold_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cashdrawer API",
	Description:      "Single-store point-of-sale register: employees, catalog, drawer sessions, sales and closing reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
