// Package docs holds the swagger registration for the kakeibo API
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
        "/backups": {
            "post": {
                "description": "Writes the current state to S3 and returns a short-lived download link",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.BackupResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Create backup",
                "tags": [
                    "backups"
                ]
            }
        },
        "/projections/daily": {
            "get": {
                "description": "Simulates the balance day by day and samples every N days",
                "parameters": [
                    {
                        "default": 90,
                        "description": "Days to simulate (1-366)",
                        "in": "query",
                        "name": "horizon",
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Record every N days (1-horizon)",
                        "in": "query",
                        "name": "sample",
                        "type": "integer"
                    },
                    {
                        "description": "Start date (YYYY-MM-DD), defaults to today",
                        "in": "query",
                        "name": "date",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.DailyProjectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Daily balance projection",
                "tags": [
                    "projections"
                ]
            }
        },
        "/projections/month": {
            "get": {
                "parameters": [
                    {
                        "description": "Start date (YYYY-MM-DD), defaults to today",
                        "in": "query",
                        "name": "date",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.MonthProjectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Rest-of-month balance projection",
                "tags": [
                    "projections"
                ]
            }
        },
        "/projections/monthly": {
            "get": {
                "description": "Twelve points labeled YYYY-MM, dated the first of each month starting with the current one. The first point is the current balance unchanged; each later point adds the recurring monthly net",
                "parameters": [
                    {
                        "description": "Start date (YYYY-MM-DD), defaults to today",
                        "in": "query",
                        "name": "date",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.MonthlyProjectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Monthly balance projection",
                "tags": [
                    "projections"
                ]
            }
        },
        "/state": {
            "get": {
                "description": "Returns the current balance, credit cards, expenses and incomes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.StateResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Get budget state",
                "tags": [
                    "state"
                ]
            },
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "description": "Replaces every part present in the body. Lists are replaced wholesale.",
                "parameters": [
                    {
                        "description": "Partial state",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.StatePatch"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.StateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Update budget state",
                "tags": [
                    "state"
                ]
            }
        },
        "/state/balance": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "New balance",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateBalanceRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.StateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Set current balance",
                "tags": [
                    "state"
                ]
            }
        },
        "/state/credit-cards": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credit cards",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "items": {
                                "$ref": "#/definitions/domain.CreditCard"
                            },
                            "type": "array"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.StateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Replace credit cards",
                "tags": [
                    "state"
                ]
            }
        },
        "/state/expenses": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Expenses",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "items": {
                                "$ref": "#/definitions/domain.Expense"
                            },
                            "type": "array"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.StateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Replace expenses",
                "tags": [
                    "state"
                ]
            }
        },
        "/state/incomes": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Incomes",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "items": {
                                "$ref": "#/definitions/domain.Income"
                            },
                            "type": "array"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.StateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Replace incomes",
                "tags": [
                    "state"
                ]
            }
        },
        "/summary": {
            "get": {
                "description": "Monthly income, expenses, savings, card debt and per-card status",
                "parameters": [
                    {
                        "description": "Reference date (YYYY-MM-DD), defaults to today",
                        "in": "query",
                        "name": "date",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.SummaryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                },
                "summary": "Financial summary",
                "tags": [
                    "summary"
                ]
            }
        }
    },
    "definitions": {
        "domain.CreditCard": {
            "properties": {
                "anchorDay": {
                    "type": "integer"
                },
                "creditLimit": {
                    "type": "number"
                },
                "currentBalance": {
                    "type": "number"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "domain.Expense": {
            "properties": {
                "amount": {
                    "type": "number"
                },
                "anchorDay": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "isRecurring": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "domain.Income": {
            "properties": {
                "amount": {
                    "type": "number"
                },
                "anchorDay": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "isRecurring": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "domain.StatePatch": {
            "properties": {
                "creditCards": {
                    "items": {
                        "$ref": "#/definitions/domain.CreditCard"
                    },
                    "type": "array"
                },
                "currentBalance": {
                    "type": "number"
                },
                "expenses": {
                    "items": {
                        "$ref": "#/definitions/domain.Expense"
                    },
                    "type": "array"
                },
                "incomes": {
                    "items": {
                        "$ref": "#/definitions/domain.Income"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "handler.BackupResponse": {
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "key": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "url": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.CardStatusResponse": {
            "properties": {
                "anchorDay": {
                    "type": "integer"
                },
                "creditLimit": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "string"
                },
                "daysUntilPayment": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "paymentUrgency": {
                    "type": "string"
                },
                "utilizationLevel": {
                    "type": "string"
                },
                "utilizationPercent": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.CreditCardResponse": {
            "properties": {
                "anchorDay": {
                    "type": "integer"
                },
                "creditLimit": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.DailyProjectionResponse": {
            "properties": {
                "horizonDays": {
                    "type": "integer"
                },
                "points": {
                    "items": {
                        "$ref": "#/definitions/handler.ProjectionPointResponse"
                    },
                    "type": "array"
                },
                "sampleEvery": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "handler.ExpenseResponse": {
            "properties": {
                "amount": {
                    "type": "string"
                },
                "anchorDay": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "isRecurring": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.IncomeResponse": {
            "properties": {
                "amount": {
                    "type": "string"
                },
                "anchorDay": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "isRecurring": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.MonthProjectionResponse": {
            "properties": {
                "points": {
                    "items": {
                        "$ref": "#/definitions/handler.ProjectionPointResponse"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "handler.MonthlyProjectionResponse": {
            "properties": {
                "points": {
                    "items": {
                        "$ref": "#/definitions/handler.ProjectionPointResponse"
                    },
                    "type": "array"
                },
                "totals": {
                    "$ref": "#/definitions/handler.TotalsResponse"
                }
            },
            "type": "object"
        },
        "handler.ProblemDetails": {
            "properties": {
                "detail": {
                    "type": "string"
                },
                "errors": {
                    "items": {
                        "$ref": "#/definitions/handler.ValidationError"
                    },
                    "type": "array"
                },
                "instance": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.ProjectionPointResponse": {
            "properties": {
                "balance": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.StateResponse": {
            "properties": {
                "creditCards": {
                    "items": {
                        "$ref": "#/definitions/handler.CreditCardResponse"
                    },
                    "type": "array"
                },
                "currentBalance": {
                    "type": "string"
                },
                "expenses": {
                    "items": {
                        "$ref": "#/definitions/handler.ExpenseResponse"
                    },
                    "type": "array"
                },
                "incomes": {
                    "items": {
                        "$ref": "#/definitions/handler.IncomeResponse"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "handler.SummaryResponse": {
            "properties": {
                "cards": {
                    "items": {
                        "$ref": "#/definitions/handler.CardStatusResponse"
                    },
                    "type": "array"
                },
                "creditCardDebt": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "string"
                },
                "daysLeft": {
                    "type": "integer"
                },
                "monthlyExpenses": {
                    "type": "string"
                },
                "monthlyIncome": {
                    "type": "string"
                },
                "monthlySavings": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.TotalsResponse": {
            "properties": {
                "creditCardDebt": {
                    "type": "string"
                },
                "monthlyExpense": {
                    "type": "string"
                },
                "monthlyIncome": {
                    "type": "string"
                },
                "monthlyNet": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.UpdateBalanceRequest": {
            "properties": {
                "currentBalance": {
                    "type": "number"
                }
            },
            "type": "object"
        },
        "handler.ValidationError": {
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            },
            "type": "object"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kakeibo API",
	Description:      "Household budget state and balance projections.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
