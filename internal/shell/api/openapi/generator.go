// Package openapi produces the OpenAPI 3 document for the HTTP API by
// reflecting on the request and response types of each registered operation.
package openapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// =============================================================================
// Generator
// =============================================================================

// Generator builds an OpenAPI 3.0 document from registered operations.
type Generator struct {
	title       string
	version     string
	description string
	servers     []string
	operations  []Operation
	mu          sync.RWMutex
	cachedSpec  *openapi3.T
}

// Response describes one documented response of an operation.
type Response struct {
	Status      int
	Description string
	Model       interface{} // nil for no body
}

// Operation describes one HTTP endpoint.
type Operation struct {
	Method    string // e.g. http.MethodPost
	Path      string // e.g. "/api/v1/slots"
	ID        string
	Summary   string
	Tag       string
	Request   interface{} // request body model, nil for none
	Responses []Response
}

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithDescription sets the API description.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(g *Generator) {
		g.servers = append(g.servers, url)
	}
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		title:       "Available Slots API",
		version:     "1.0.0",
		description: "Free time slots within a working day",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Register adds an operation to the document.
func (g *Generator) Register(op Operation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.operations = append(g.operations, op)
	g.cachedSpec = nil // Invalidate cache
}

// Generate produces the OpenAPI 3.0 document. The result is cached until
// the next Register call.
func (g *Generator) Generate() *openapi3.T {
	g.mu.RLock()
	if g.cachedSpec != nil {
		spec := g.cachedSpec
		g.mu.RUnlock()
		return spec
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	// Double-check after acquiring write lock
	if g.cachedSpec != nil {
		return g.cachedSpec
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       g.title,
			Version:     g.version,
			Description: g.description,
		},
		Servers: make(openapi3.Servers, 0, len(g.servers)),
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, url := range g.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	for _, op := range g.operations {
		g.addOperation(spec, op)
	}

	g.cachedSpec = spec
	return spec
}

// Handler returns an HTTP handler that serves the document as JSON.
func (g *Generator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := g.Generate()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI spec", http.StatusInternalServerError)
		}
	}
}

// =============================================================================
// Operation Generation
// =============================================================================

func (g *Generator) addOperation(spec *openapi3.T, op Operation) {
	operation := &openapi3.Operation{
		OperationID: op.ID,
		Summary:     op.Summary,
		Responses:   &openapi3.Responses{},
	}
	if op.Tag != "" {
		operation.Tags = []string{op.Tag}
	}

	if op.Request != nil {
		operation.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Required: true,
				Content: openapi3.Content{
					"application/json": &openapi3.MediaType{
						Schema: g.schemaRef(spec, op.Request),
					},
				},
			},
		}
	}

	for _, res := range op.Responses {
		desc := res.Description
		response := &openapi3.Response{Description: &desc}
		if res.Model != nil {
			response.Content = openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: g.schemaRef(spec, res.Model),
				},
			}
		}
		operation.Responses.Set(strconv.Itoa(res.Status), &openapi3.ResponseRef{Value: response})
	}

	item := spec.Paths.Value(op.Path)
	if item == nil {
		item = &openapi3.PathItem{}
		spec.Paths.Set(op.Path, item)
	}
	item.SetOperation(strings.ToUpper(op.Method), operation)
}

// schemaRef registers the model under components/schemas and returns a $ref to it.
func (g *Generator) schemaRef(spec *openapi3.T, model interface{}) *openapi3.SchemaRef {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return g.goTypeToSchema(spec, t)
	}

	name := t.Name()
	if _, ok := spec.Components.Schemas[name]; !ok {
		// Reserve the name first so self-referencing types terminate.
		spec.Components.Schemas[name] = &openapi3.SchemaRef{Value: &openapi3.Schema{}}
		spec.Components.Schemas[name] = g.extractSchema(spec, t)
	}
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + name}
}

// =============================================================================
// Schema Generation
// =============================================================================

// extractSchema extracts an OpenAPI schema from a Go struct type.
// Fields without omitempty are listed as required.
func (g *Generator) extractSchema(spec *openapi3.T, t reflect.Type) *openapi3.SchemaRef {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		omitempty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitempty = true
				}
			}
		}

		propSchema := g.goTypeToSchema(spec, field.Type)
		if propSchema != nil {
			applyBounds(propSchema, field.Tag)
			schema.Properties[name] = propSchema
		}
		if !omitempty {
			schema.Required = append(schema.Required, name)
		}
	}

	return &openapi3.SchemaRef{Value: schema}
}

// applyBounds copies `minimum` and `maximum` struct tags onto an inline schema.
func applyBounds(ref *openapi3.SchemaRef, tag reflect.StructTag) {
	if ref.Ref != "" || ref.Value == nil {
		return
	}
	if v, err := strconv.ParseFloat(tag.Get("minimum"), 64); err == nil {
		ref.Value.Min = &v
	}
	if v, err := strconv.ParseFloat(tag.Get("maximum"), 64); err == nil {
		ref.Value.Max = &v
	}
}

// goTypeToSchema converts a Go type to an OpenAPI schema.
func (g *Generator) goTypeToSchema(spec *openapi3.T, t reflect.Type) *openapi3.SchemaRef {
	switch t.Kind() {
	case reflect.String:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}

	case reflect.Int8, reflect.Int16, reflect.Int32:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}}

	case reflect.Int, reflect.Int64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}}

	case reflect.Bool:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}

	case reflect.Slice, reflect.Array:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: g.goTypeToSchema(spec, t.Elem()),
			},
		}

	case reflect.Ptr:
		if t.Elem().Kind() == reflect.Struct {
			return g.schemaRef(spec, reflect.New(t.Elem()).Interface())
		}
		schema := g.goTypeToSchema(spec, t.Elem())
		if schema != nil && schema.Value != nil {
			schema.Value.Nullable = true
		}
		return schema

	case reflect.Struct:
		return g.schemaRef(spec, reflect.New(t).Interface())

	default:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	}
}
