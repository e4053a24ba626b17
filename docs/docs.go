// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: go generate ./docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.BasePath}}"
        }
    ],
    "paths": {
        "/leases": {
            "post": {
                "operationId": "createLease",
                "tags": [
                    "leases"
                ],
                "summary": "Create a lease",
                "parameters": [],
                "responses": {
                    "201": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.LeaseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/ledger.CreateLeaseRequest"
                            }
                        }
                    }
                }
            },
            "get": {
                "operationId": "listLeases",
                "tags": [
                    "leases"
                ],
                "summary": "List leases",
                "parameters": [
                    {
                        "name": "tenant_id",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "property_id",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "integer"
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "integer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/ledger.LeaseResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/leases/{id}": {
            "get": {
                "operationId": "getLease",
                "tags": [
                    "leases"
                ],
                "summary": "Get lease by ID",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.LeaseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/leases/{id}/activate": {
            "post": {
                "operationId": "activateLease",
                "tags": [
                    "leases"
                ],
                "summary": "Activate a pending lease",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.LeaseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/leases/{id}/expire": {
            "post": {
                "operationId": "expireLease",
                "tags": [
                    "leases"
                ],
                "summary": "Expire an active lease",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.LeaseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/leases/{id}/refresh-status": {
            "post": {
                "operationId": "refreshLeaseStatus",
                "tags": [
                    "leases"
                ],
                "summary": "Apply date-driven lease transitions",
                "description": "Activates a pending lease whose start date has come and expires an active lease past its end date. as_of defaults to today.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        },
                        "description": "Lease ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.LeaseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "requestBody": {
                    "required": false,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/ledger.RefreshLeaseStatusRequest"
                            }
                        }
                    }
                }
            }
        },
        "/leases/{id}/periods/generate": {
            "post": {
                "operationId": "generateLeasePeriods",
                "tags": [
                    "leases"
                ],
                "summary": "Generate rent periods",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/ledger.PeriodResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/ledger.GeneratePeriodsRequest"
                            }
                        }
                    }
                }
            }
        },
        "/tenants/{tenant_id}/periods": {
            "get": {
                "operationId": "listTenantPeriods",
                "tags": [
                    "tenants"
                ],
                "summary": "List a tenant's rent periods",
                "parameters": [
                    {
                        "name": "tenant_id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "as_of",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/ledger.PeriodResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/tenants/{tenant_id}/arrears": {
            "get": {
                "operationId": "getTenantArrears",
                "tags": [
                    "tenants"
                ],
                "summary": "Tenant arrears",
                "parameters": [
                    {
                        "name": "tenant_id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "as_of",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "generate",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "boolean"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.ArrearsResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/payments": {
            "post": {
                "operationId": "createPayment",
                "tags": [
                    "payments"
                ],
                "summary": "Record a payment",
                "parameters": [
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.PaymentResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/ledger.RecordPaymentRequest"
                            }
                        }
                    }
                }
            }
        },
        "/payments/{id}": {
            "get": {
                "operationId": "getPayment",
                "tags": [
                    "payments"
                ],
                "summary": "Get payment by ID",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.PaymentResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            },
            "put": {
                "operationId": "editPayment",
                "tags": [
                    "payments"
                ],
                "summary": "Edit a payment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.PaymentResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/ledger.EditPaymentRequest"
                            }
                        }
                    }
                }
            }
        },
        "/payments/{id}/reallocate": {
            "post": {
                "operationId": "reallocatePayment",
                "tags": [
                    "payments"
                ],
                "summary": "Re-run a payment's allocation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.PaymentResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/periods/{id}/waive-late-fee": {
            "post": {
                "operationId": "waivePeriodLateFee",
                "tags": [
                    "periods"
                ],
                "summary": "Waive a period's late fee",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.PeriodResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/periods/{id}/due-date": {
            "put": {
                "operationId": "overridePeriodDueDate",
                "tags": [
                    "periods"
                ],
                "summary": "Correct a period's due date",
                "description": "Lateness and status are measured from the override. An empty due_date clears it. as_of defaults to today.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        },
                        "description": "Rent period ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.PeriodResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/ledger.OverrideDueDateRequest"
                            }
                        }
                    }
                }
            }
        },
        "/reports/collections": {
            "get": {
                "operationId": "getCollections",
                "tags": [
                    "reports"
                ],
                "summary": "Collections report",
                "parameters": [
                    {
                        "name": "start",
                        "in": "query",
                        "required": true,
                        "schema": {
                            "type": "string"
                        },
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "end",
                        "in": "query",
                        "required": true,
                        "schema": {
                            "type": "string"
                        },
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "tenant_id",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "property_id",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ledger.CollectionSummary"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/collections/export": {
            "get": {
                "operationId": "exportCollections",
                "tags": [
                    "reports"
                ],
                "summary": "Export collections as XLSX",
                "parameters": [
                    {
                        "name": "start",
                        "in": "query",
                        "required": true,
                        "schema": {
                            "type": "string"
                        },
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "end",
                        "in": "query",
                        "required": true,
                        "schema": {
                            "type": "string"
                        },
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "tenant_id",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "property_id",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "XLSX workbook",
                        "content": {
                            "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {
                                "schema": {
                                    "type": "string",
                                    "format": "binary"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/system/info": {
            "get": {
                "operationId": "getSystemInfo",
                "tags": [
                    "system"
                ],
                "summary": "Get system information",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/handler.SystemInfoResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "dto.Response": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "data": {},
                    "error": {
                        "$ref": "#/components/schemas/dto.ErrorInfo"
                    },
                    "meta": {
                        "$ref": "#/components/schemas/dto.Meta"
                    }
                }
            },
            "dto.ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {
                        "type": "string",
                        "example": "ERR_TENANT_NOT_FOUND"
                    },
                    "message": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "timestamp": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "details": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/dto.ValidationDetail"
                        }
                    }
                }
            },
            "dto.ValidationDetail": {
                "type": "object",
                "properties": {
                    "field": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    }
                }
            },
            "dto.Meta": {
                "type": "object",
                "properties": {
                    "total": {
                        "type": "integer"
                    },
                    "page": {
                        "type": "integer"
                    },
                    "page_size": {
                        "type": "integer"
                    },
                    "total_pages": {
                        "type": "integer"
                    }
                }
            },
            "handler.ErrorResponse": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean",
                        "example": false
                    },
                    "error": {
                        "$ref": "#/components/schemas/dto.ErrorInfo"
                    }
                }
            },
            "handler.SystemInfoResponse": {
                "type": "object",
                "properties": {
                    "name": {
                        "type": "string"
                    },
                    "version": {
                        "type": "string"
                    },
                    "go_version": {
                        "type": "string"
                    },
                    "uptime": {
                        "type": "string"
                    }
                }
            },
            "ledger.CreateLeaseRequest": {
                "type": "object",
                "required": [
                    "tenant_id",
                    "property_id",
                    "rent_amount",
                    "cadence",
                    "start_date"
                ],
                "properties": {
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "property_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "rent_amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "cadence": {
                        "type": "string",
                        "enum": [
                            "weekly",
                            "bi_weekly",
                            "monthly"
                        ]
                    },
                    "start_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "end_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "draft": {
                        "type": "boolean"
                    }
                }
            },
            "ledger.LeaseResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "property_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "rent_amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "cadence": {
                        "type": "string"
                    },
                    "start_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "end_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "status": {
                        "type": "string",
                        "enum": [
                            "pending",
                            "active",
                            "expired"
                        ]
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "ledger.GeneratePeriodsRequest": {
                "type": "object",
                "required": [
                    "horizon"
                ],
                "properties": {
                    "horizon": {
                        "type": "string",
                        "format": "date"
                    }
                }
            },
            "ledger.OverrideDueDateRequest": {
                "type": "object",
                "properties": {
                    "due_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "as_of": {
                        "type": "string",
                        "format": "date"
                    }
                }
            },
            "ledger.PeriodResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "lease_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "period_due_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "effective_due_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "rent_amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "amount_paid": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "late_fee_applied": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "late_fee_paid": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "late_fee_waived": {
                        "type": "boolean"
                    },
                    "outstanding": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "status": {
                        "type": "string",
                        "enum": [
                            "unpaid",
                            "partial",
                            "paid",
                            "overdue"
                        ]
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "ledger.RefreshLeaseStatusRequest": {
                "type": "object",
                "properties": {
                    "as_of": {
                        "type": "string",
                        "format": "date"
                    }
                }
            },
            "ledger.RecordPaymentRequest": {
                "type": "object",
                "required": [
                    "tenant_id",
                    "amount",
                    "payment_date"
                ],
                "properties": {
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "payment_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "notes": {
                        "type": "string",
                        "maxLength": 500
                    }
                }
            },
            "ledger.EditPaymentRequest": {
                "type": "object",
                "properties": {
                    "amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "payment_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "notes": {
                        "type": "string",
                        "maxLength": 500
                    }
                }
            },
            "ledger.AllocationResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "rent_period_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "amount_allocated": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "to_late_fee": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "to_rent": {
                        "type": "string",
                        "example": "1000.00"
                    }
                }
            },
            "ledger.PaymentResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "property_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "payment_date": {
                        "type": "string",
                        "format": "date"
                    },
                    "notes": {
                        "type": "string"
                    },
                    "allocated_amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "unapplied_amount": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "version": {
                        "type": "integer"
                    },
                    "allocations": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/ledger.AllocationResponse"
                        }
                    },
                    "replayed": {
                        "type": "boolean"
                    }
                }
            },
            "ledger.ArrearsResponse": {
                "type": "object",
                "properties": {
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "as_of": {
                        "type": "string",
                        "format": "date"
                    },
                    "total_owed": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "total_late_fees": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "missed_periods": {
                        "type": "integer"
                    },
                    "open_periods": {
                        "type": "integer"
                    },
                    "cached": {
                        "type": "boolean"
                    }
                }
            },
            "ledger.BreakdownEntry": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "total_collected": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "payment_count": {
                        "type": "integer"
                    }
                }
            },
            "ledger.CollectionSummary": {
                "type": "object",
                "properties": {
                    "start": {
                        "type": "string",
                        "format": "date"
                    },
                    "end": {
                        "type": "string",
                        "format": "date"
                    },
                    "total_collected": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "total_allocated": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "total_unapplied": {
                        "type": "string",
                        "example": "1000.00"
                    },
                    "payment_count": {
                        "type": "integer"
                    },
                    "by_tenant": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/ledger.BreakdownEntry"
                        }
                    },
                    "by_property": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/ledger.BreakdownEntry"
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Rentdesk Ledger API",
	Description:      "Rent ledger and payment allocation service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
