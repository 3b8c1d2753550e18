package domain

import "encoding/json"

const (
	TypeObject = "object"
	TypeArray  = "array"
	TypeString = "string"
)

// Schema is a provider-neutral description of a structured response.
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	// Ordering is the property order presented to the model.
	Ordering []string
	Required []string
	Items    *Schema
	Enum     []string
	Nullable bool
}

// ObjectRequest asks a structured-generation backend for one JSON object
// conforming to Schema.
type ObjectRequest struct {
	Model  string
	Name   string
	System string
	Prompt string
	Schema *Schema
}

// RawObject is the undecoded JSON object returned by a structured-generation backend.
type RawObject = json.RawMessage
