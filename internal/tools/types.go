// Package tools implements the gateway core: the tool registry, the invoker
// that dispatches named tools against it, and the introspection reporter.
//
// A tool is a named, independently invokable operation with a declared input
// contract and an optional required integration. Descriptors are registered
// once at startup, the registry is sealed, and everything afterwards is a
// read-only lookup. Concurrent invocations share the registry and the
// configuration snapshot without locking.
package tools

import (
	"context"
)

// Param types accepted in a tool's input contract. JSON payloads decode
// numbers as float64 and objects as map[string]any; validation normalizes
// accordingly.
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "boolean"
	TypeObject = "object"
)

// Param declares one parameter of a tool's input contract. Optional
// parameters may carry a default that is applied when the argument is
// omitted.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
}

// Handler is the executable logic bound to a tool. It receives validated
// arguments (defaults applied) and returns the tool-specific payload fields.
// Backend failures are returned as errors; the invoker normalizes them.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Descriptor is the immutable registration record for one tool.
type Descriptor struct {
	// Name uniquely identifies the tool. Registering two descriptors with
	// the same name is a startup error.
	Name        string
	Description string

	// Integration names the config integration this tool requires, or is
	// empty for integration-free tools (introspection, local composition).
	Integration string

	Params  []Param
	Handler Handler
}

// JSONSchema is the wire representation of an input contract, in the shape
// MCP clients expect from tools/list.
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// InputSchema renders the descriptor's parameter contract as a JSON schema.
func (d Descriptor) InputSchema() JSONSchema {
	schema := JSONSchema{
		Type:       "object",
		Properties: make(map[string]*JSONSchema, len(d.Params)),
	}
	for _, p := range d.Params {
		schema.Properties[p.Name] = &JSONSchema{
			Type:        p.Type,
			Description: p.Description,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}
