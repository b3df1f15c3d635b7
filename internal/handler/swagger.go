package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/keiri-hq/keiri-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

// openAPI3Doc is the subset of an OpenAPI 3.0 document rebuilt from the swag output
type openAPI3Doc struct {
	OpenAPI    string         `json:"openapi"`
	Info       any            `json:"info"`
	Servers    []docServer    `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

type docServer struct {
	URL string `json:"url"`
}

// DocsHandler serves the API description as OpenAPI 3.0
type DocsHandler struct {
	publicURL string
}

// NewDocsHandler creates a DocsHandler listing publicURL as the API server
func NewDocsHandler(publicURL string) *DocsHandler {
	return &DocsHandler{publicURL: strings.TrimSuffix(publicURL, "/")}
}

// ServeOpenAPI3 handles GET /openapi.json
func (h *DocsHandler) ServeOpenAPI3(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read swagger doc")
		return writeProblem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", "Failed to read API description", nil)
	}

	out, err := toOpenAPI3([]byte(doc), h.publicURL+docs.SwaggerInfo.BasePath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to convert swagger doc")
		return writeProblem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", "Failed to read API description", nil)
	}
	return c.JSON(http.StatusOK, out)
}

// toOpenAPI3 converts a Swagger 2.0 document served under serverURL
func toOpenAPI3(swagger2 []byte, serverURL string) (*openAPI3Doc, error) {
	var src struct {
		Info                any                       `json:"info"`
		Paths               map[string]map[string]any `json:"paths"`
		Definitions         map[string]any            `json:"definitions"`
		SecurityDefinitions map[string]any            `json:"securityDefinitions"`
	}
	if err := json.Unmarshal(swagger2, &src); err != nil {
		return nil, err
	}

	paths := make(map[string]any, len(src.Paths))
	for path, ops := range src.Paths {
		converted := make(map[string]any, len(ops))
		for method, op := range ops {
			if m, ok := op.(map[string]any); ok {
				converted[method] = convertOperation(m)
			}
		}
		paths[path] = converted
	}

	components := map[string]any{}
	if len(src.Definitions) > 0 {
		components["schemas"] = rewriteRefs(src.Definitions)
	}
	if len(src.SecurityDefinitions) > 0 {
		components["securitySchemes"] = src.SecurityDefinitions
	}

	return &openAPI3Doc{
		OpenAPI:    "3.0.3",
		Info:       src.Info,
		Servers:    []docServer{{URL: serverURL}},
		Paths:      paths,
		Components: components,
	}, nil
}

// convertOperation moves the body parameter into requestBody, wraps typed
// parameters in a schema and response schemas in JSON content
func convertOperation(op map[string]any) map[string]any {
	out := make(map[string]any, len(op))
	for k, v := range op {
		switch k {
		case "consumes", "produces", "parameters", "responses":
		default:
			out[k] = v
		}
	}

	var params []any
	list, _ := op["parameters"].([]any)
	for _, p := range list {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if param["in"] == "body" {
			out["requestBody"] = map[string]any{
				"description": param["description"],
				"required":    param["required"],
				"content":     jsonContent(param["schema"]),
			}
			continue
		}
		converted := map[string]any{}
		schema := map[string]any{}
		for k, v := range param {
			switch k {
			case "type", "format", "enum", "default", "minimum", "maximum", "items":
				schema[k] = rewriteRefs(v)
			default:
				converted[k] = v
			}
		}
		if len(schema) > 0 {
			converted["schema"] = schema
		}
		params = append(params, converted)
	}
	if len(params) > 0 {
		out["parameters"] = params
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
				entry["content"] = jsonContent(schema)
			}
			converted[status] = entry
		}
		out["responses"] = converted
	}
	return out
}

func jsonContent(schema any) map[string]any {
	return map[string]any{
		"application/json": map[string]any{"schema": rewriteRefs(schema)},
	}
}

// rewriteRefs points #/definitions/ references at #/components/schemas/
func rewriteRefs(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if ref, ok := val.(string); ok && k == "$ref" {
				out[k] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[k] = rewriteRefs(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return v
	}
}
