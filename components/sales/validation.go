package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// InputValidator checks a sale form before it is submitted.
type InputValidator interface {
	ValidateInput(input SaleInput) error
}

const saleInputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["passengers", "price", "route", "time", "ferry", "date", "payed", "payment"],
  "properties": {
    "id": {"type": "integer", "minimum": 1},
    "passengers": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "pattern": "\\S"},
          "age": {"type": "integer", "minimum": 0, "maximum": 150}
        }
      }
    },
    "price": {"type": "number", "minimum": 0},
    "route": {"type": "string", "minLength": 1},
    "time": {"type": "string", "minLength": 1},
    "ferry": {"type": "string", "minLength": 1},
    "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
    "payed": {"type": "boolean"},
    "payment": {"type": "string", "minLength": 1}
  }
}`

// JSONSchemaValidator validates sale forms against a compiled JSON schema.
type JSONSchemaValidator struct {
	source string
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewJSONSchemaValidator uses the built-in sale schema.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{source: saleInputSchema}
}

// ValidateInput returns an error wrapping ErrInvalidInput when the form is incomplete.
func (v *JSONSchemaValidator) ValidateInput(input SaleInput) error {
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("sales: marshal sale input: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("sales: normalize sale input: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (v *JSONSchemaValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		const name = "sale-input.json"
		if err := compiler.AddResource(name, bytes.NewReader([]byte(v.source))); err != nil {
			v.err = fmt.Errorf("sales: load sale schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile(name)
		if v.err != nil {
			v.err = fmt.Errorf("sales: compile sale schema: %w", v.err)
		}
	})
	return v.schema, v.err
}

type noopInputValidator struct{}

func (noopInputValidator) ValidateInput(SaleInput) error { return nil }
