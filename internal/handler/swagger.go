package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/economize/economize-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

const jsonContent = "application/json"

// OpenAPI3Spec is the OpenAPI 3.0 document served at /openapi.json
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []map[string]string    `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// ServeOpenAPI3Spec serves the generated Swagger 2.0 doc converted to OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	var v2 map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &v2); err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	return c.JSON(http.StatusOK, convertSwagger2(v2))
}

func convertSwagger2(v2 map[string]interface{}) OpenAPI3Spec {
	info, _ := v2["info"].(map[string]interface{})
	host, _ := v2["host"].(string)
	basePath, _ := v2["basePath"].(string)
	if host == "" {
		host = "localhost:8080"
	}

	paths := make(map[string]interface{})
	if v2Paths, ok := v2["paths"].(map[string]interface{}); ok {
		for path, item := range v2Paths {
			operations, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			converted := make(map[string]interface{}, len(operations))
			for method, op := range operations {
				if opMap, ok := op.(map[string]interface{}); ok {
					converted[method] = convertOperation(opMap)
				}
			}
			paths[path] = converted
		}
	}

	spec := OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    info,
		Servers: []map[string]string{{"url": "http://" + host + basePath}},
		Paths:   paths,
	}
	if definitions, ok := v2["definitions"].(map[string]interface{}); ok {
		spec.Components = map[string]interface{}{"schemas": rewriteRefs(definitions)}
	}
	return spec
}

// convertOperation moves the body parameter into requestBody and wraps
// response schemas in a JSON media type
func convertOperation(op map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[key] = rewriteRefs(value)
		}
	}

	if params, ok := op["parameters"].([]interface{}); ok {
		var converted []interface{}
		for _, p := range params {
			param, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			if param["in"] == "body" {
				body := map[string]interface{}{
					"required": param["required"] == true,
					"content":  jsonMedia(param["schema"]),
				}
				if desc, ok := param["description"]; ok {
					body["description"] = desc
				}
				out["requestBody"] = body
				continue
			}
			converted = append(converted, convertParameter(param))
		}
		if len(converted) > 0 {
			out["parameters"] = converted
		}
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		converted := make(map[string]interface{}, len(responses))
		for status, r := range responses {
			resp, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			entry := map[string]interface{}{"description": resp["description"]}
			if schema, ok := resp["schema"]; ok {
				entry["content"] = jsonMedia(schema)
			}
			converted[status] = entry
		}
		out["responses"] = converted
	}

	return out
}

// convertParameter turns a Swagger 2.0 non-body parameter into OpenAPI 3.0 form,
// where the type information lives under schema
func convertParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	schema := make(map[string]interface{})
	for key, value := range param {
		switch key {
		case "name", "in", "description", "required":
			result[key] = value
		case "type", "format", "enum", "default", "minimum", "maximum", "items":
			schema[key] = rewriteRefs(value)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

func jsonMedia(schema interface{}) map[string]interface{} {
	return map[string]interface{}{
		jsonContent: map[string]interface{}{"schema": rewriteRefs(schema)},
	}
}

// rewriteRefs points every $ref at components/schemas
func rewriteRefs(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			if ref, ok := inner.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = rewriteRefs(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = rewriteRefs(inner)
		}
		return out
	default:
		return value
	}
}
