package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/kakeibo/kakeibo-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string         `json:"openapi"`
	Info       map[string]any `json:"info"`
	Servers    []Server       `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// rewriteRefs points $ref values at #/components/schemas/ instead of #/definitions/
func rewriteRefs(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return data
	}
}

// convertOperation turns a Swagger 2.0 operation into its OpenAPI 3.0 shape:
// query parameters get a schema, the body parameter becomes requestBody and
// response schemas move under content.
func convertOperation(op map[string]any) map[string]any {
	out := make(map[string]any, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[key] = value
		}
	}

	if params, ok := op["parameters"].([]any); ok {
		var converted []any
		for _, p := range params {
			param, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if param["in"] == "body" {
				out["requestBody"] = map[string]any{
					"description": param["description"],
					"required":    param["required"],
					"content": map[string]any{
						"application/json": map[string]any{"schema": param["schema"]},
					},
				}
				continue
			}
			converted = append(converted, convertParameter(param))
		}
		if len(converted) > 0 {
			out["parameters"] = converted
		}
	}

	if responses, ok := op["responses"].(map[string]any); ok {
		converted := make(map[string]any, len(responses))
		for status, r := range responses {
			resp, ok := r.(map[string]any)
			if !ok {
				continue
			}
			entry := map[string]any{"description": resp["description"]}
			if schema, ok := resp["schema"]; ok {
				entry["content"] = map[string]any{
					"application/json": map[string]any{"schema": schema},
				}
			}
			converted[status] = entry
		}
		out["responses"] = converted
	}

	return out
}

// convertParameter moves type-related fields of a non-body parameter into schema
func convertParameter(param map[string]any) map[string]any {
	out := make(map[string]any)
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}

	schema := make(map[string]any)
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = val
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

// toOpenAPI3 converts a parsed Swagger 2.0 document
func toOpenAPI3(swagger2 map[string]any, serverURL string) OpenAPI3Spec {
	info, _ := swagger2["info"].(map[string]any)

	paths := make(map[string]any)
	if rawPaths, ok := swagger2["paths"].(map[string]any); ok {
		for path, item := range rawPaths {
			ops, ok := item.(map[string]any)
			if !ok {
				continue
			}
			converted := make(map[string]any, len(ops))
			for method, op := range ops {
				if operation, ok := op.(map[string]any); ok {
					converted[method] = convertOperation(operation)
				}
			}
			paths[path] = converted
		}
	}

	components := make(map[string]any)
	if definitions, ok := swagger2["definitions"].(map[string]any); ok {
		components["schemas"] = definitions
	}

	return OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    []Server{{URL: serverURL, Description: "This server"}},
		Paths:      rewriteRefs(paths).(map[string]any),
		Components: rewriteRefs(components).(map[string]any),
	}
}

// ServeOpenAPI3Spec serves the swagger spec converted to OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	var swagger2 map[string]any
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	serverURL := c.Scheme() + "://" + c.Request().Host + "/api/v1"
	return c.JSON(http.StatusOK, toOpenAPI3(swagger2, serverURL))
}
