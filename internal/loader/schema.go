package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is one schema violation: where in the document plus why
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s: %s", path, v.Reason)
}

// ValidationResult is the outcome of validating one document. Validation
// failure is non-fatal: the caller still loads and displays the document,
// showing the violations alongside it.
type ValidationResult struct {
	IsValid bool        `json:"isValid"`
	Errors  []Violation `json:"errors"`
}

// Validator validates result documents against a JSON Schema fetched once
// and cached for the session.
type Validator struct {
	loader    *Loader
	schemaRef string

	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewValidator creates a Validator for the schema at schemaRef (path or URL)
func NewValidator(l *Loader, schemaRef string) *Validator {
	return &Validator{loader: l, schemaRef: schemaRef}
}

// Validate checks a raw document against the cached schema. The schema is
// fetched and compiled on first use only; a schema that cannot be loaded
// fails every validation with the same error.
func (v *Validator) Validate(ctx context.Context, document []byte) (*ValidationResult, error) {
	v.once.Do(func() {
		data, err := v.loader.LoadRaw(ctx, v.schemaRef)
		if err != nil {
			v.err = fmt.Errorf("load schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(v.schemaRef, bytes.NewReader(data)); err != nil {
			v.err = fmt.Errorf("add schema resource: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile(v.schemaRef)
		if v.err != nil {
			v.err = fmt.Errorf("compile schema: %w", v.err)
		}
	})
	if v.err != nil {
		return nil, v.err
	}

	var instance interface{}
	if err := json.Unmarshal(document, &instance); err != nil {
		return nil, fmt.Errorf("parse document for validation: %w", err)
	}

	if err := v.schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &ValidationResult{IsValid: false, Errors: collectViolations(ve)}, nil
		}
		return nil, fmt.Errorf("validate document: %w", err)
	}

	return &ValidationResult{IsValid: true}, nil
}

// collectViolations flattens a validation error tree into leaf messages
func collectViolations(ve *jsonschema.ValidationError) []Violation {
	if len(ve.Causes) == 0 {
		return []Violation{{Path: ve.InstanceLocation, Reason: ve.Message}}
	}
	var out []Violation
	for _, cause := range ve.Causes {
		out = append(out, collectViolations(cause)...)
	}
	return out
}
