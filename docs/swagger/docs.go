// Package swagger registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/start.go -o docs/swagger
package swagger

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
        "/validations": {
            "get": {
                "description": "List recent validation runs, newest first.",
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "List Validations",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 20,
                        "description": "Maximum number of runs",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Runs",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.ValidationRun"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "503": {
                        "description": "History disabled",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            },
            "post": {
                "description": "Compare source and target records using a mapping configuration. Empty fields use the server defaults.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Run Validation",
                "parameters": [
                    {
                        "description": "Locations and duplicate key policy",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/models.RunRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Validation report",
                        "schema": {"$ref": "#/definitions/reconcile.ValidationResult"},
                        "headers": {
                            "X-Run-ID": {"type": "string", "description": "Run identifier"}
                        }
                    },
                    "400": {
                        "description": "Invalid mapping configuration or location not allowed",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "422": {
                        "description": "Unreadable source or target",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/validations/{id}": {
            "get": {
                "description": "Get a stored validation run and its report.",
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Get Validation",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Run identifier",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Run",
                        "schema": {"$ref": "#/definitions/models.RunDetail"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "503": {
                        "description": "History disabled",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.RunRequest": {
            "type": "object",
            "properties": {
                "duplicateKeys": {"type": "string", "enum": ["ignore", "report", "fail"]},
                "mapping": {"type": "string"},
                "source": {"type": "string"},
                "target": {"type": "string"}
            }
        },
        "models.ValidationRun": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "duplicate_keys": {"type": "integer"},
                "field_mapping_failures": {"type": "integer"},
                "id": {"type": "string"},
                "mapping": {"type": "string"},
                "missing_target_rows": {"type": "integer"},
                "row_count_failed": {"type": "boolean"},
                "source": {"type": "string"},
                "status": {"type": "string"},
                "target": {"type": "string"},
                "unique_key": {"type": "string"},
                "value_mismatches": {"type": "integer"}
            }
        },
        "models.RunDetail": {
            "allOf": [
                {"$ref": "#/definitions/models.ValidationRun"},
                {
                    "type": "object",
                    "properties": {
                        "report": {"$ref": "#/definitions/reconcile.ValidationResult"}
                    }
                }
            ]
        },
        "reconcile.RowCountResult": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "message": {"type": "string"},
                "sourceCount": {"type": "integer"},
                "status": {"type": "string"},
                "targetCount": {"type": "integer"}
            }
        },
        "reconcile.FieldMappingEntryResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "sourceField": {"type": "string"},
                "status": {"type": "string"},
                "targetField": {"type": "string"}
            }
        },
        "reconcile.Mismatch": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "field": {"type": "string"},
                "key": {"type": "string"},
                "sourceValue": {"type": "string"},
                "targetValue": {"type": "string"}
            }
        },
        "reconcile.DuplicateKeyReport": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "keys": {"type": "array", "items": {"type": "string"}}
            }
        },
        "reconcile.ValidationResult": {
            "type": "object",
            "properties": {
                "duplicateKeys": {"$ref": "#/definitions/reconcile.DuplicateKeyReport"},
                "fieldMappingCheck": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/reconcile.FieldMappingEntryResult"}
                },
                "mismatchedRecords": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/reconcile.Mismatch"}
                },
                "rowCountCheck": {"$ref": "#/definitions/reconcile.RowCountResult"},
                "status": {"type": "string", "enum": ["success", "failed"]}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Data Reconciliation API",
	Description:      "API for comparing source and target record sets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
