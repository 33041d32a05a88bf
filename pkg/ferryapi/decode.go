package ferryapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

const salesResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "anyOf": [
        {"type": "array", "items": {"$ref": "#/definitions/row"}},
        {"$ref": "#/definitions/row"},
        {"type": "null"}
      ]
    }
  },
  "definitions": {
    "row": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "integer"},
        "age": {"type": ["integer", "string", "null"]},
        "price": {"type": ["number", "string", "null"]},
        "payed": {"type": ["boolean", "string", "null"]}
      }
    }
  }
}`

var (
	salesSchemaOnce sync.Once
	salesSchema     *jsonschema.Schema
	salesSchemaErr  error
)

func compiledSalesSchema() (*jsonschema.Schema, error) {
	salesSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		const name = "sales-response.json"
		if err := compiler.AddResource(name, strings.NewReader(salesResponseSchema)); err != nil {
			salesSchemaErr = fmt.Errorf("ferryapi: load sales schema: %w", err)
			return
		}
		salesSchema, salesSchemaErr = compiler.Compile(name)
	})
	return salesSchema, salesSchemaErr
}

// decodeSales validates body against the response schema and converts it
// into rows. A single object under "data" is treated as a one-row list.
func decodeSales(body []byte) ([]sales.Sale, error) {
	schema, err := compiledSalesSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &sales.DecodeError{Resource: "sales", Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &sales.DecodeError{Resource: "sales", Field: schemaField(err), Err: err}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &sales.DecodeError{Resource: "sales", Err: err}
	}
	raw := bytes.TrimSpace(envelope.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []sales.Sale{}, nil
	}
	var rows []wireSale
	if raw[0] == '{' {
		var row wireSale
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, decodeFieldError(err)
		}
		rows = []wireSale{row}
	} else if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, decodeFieldError(err)
	}
	out := make([]sales.Sale, len(rows))
	for i, row := range rows {
		out[i] = row.toSale()
	}
	return out, nil
}

func schemaField(err error) string {
	var validation *jsonschema.ValidationError
	if !errors.As(err, &validation) {
		return ""
	}
	for len(validation.Causes) > 0 {
		validation = validation.Causes[0]
	}
	return strings.TrimPrefix(validation.InstanceLocation, "/")
}

func decodeFieldError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &sales.DecodeError{Resource: "sales", Field: typeErr.Field, Err: err}
	}
	return &sales.DecodeError{Resource: "sales", Err: err}
}

type wireSale struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Age          flexInt   `json:"age"`
	Route        string    `json:"route"`
	Time         flexText  `json:"time"`
	Ferry        string    `json:"ferry"`
	Intermediary string    `json:"intermediary"`
	Date         string    `json:"date"`
	Seller       string    `json:"seller"`
	Passport     string    `json:"passport"`
	Phone        flexText  `json:"phone"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	Payed        flexBool  `json:"payed"`
	Payment      string    `json:"payment"`
	Price        flexFloat `json:"price"`
	Mail         string    `json:"mail"`
	BusinessID   int64     `json:"business_id"`
	CreatedAt    string    `json:"created_at"`
}

func (w wireSale) toSale() sales.Sale {
	return sales.Sale{
		ID:           w.ID,
		Name:         w.Name,
		Age:          int(w.Age),
		Route:        w.Route,
		Time:         string(w.Time),
		Ferry:        w.Ferry,
		Intermediary: w.Intermediary,
		Date:         normalizeDate(w.Date),
		Seller:       w.Seller,
		Passport:     w.Passport,
		Phone:        string(w.Phone),
		Status:       w.Status,
		Notes:        w.Notes,
		Payed:        bool(w.Payed),
		Payment:      w.Payment,
		Price:        float64(w.Price),
		Mail:         w.Mail,
		BusinessID:   w.BusinessID,
		CreatedAt:    w.CreatedAt,
	}
}

// normalizeDate keeps the calendar day of ISO timestamps.
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > len(sales.DateLayout) && value[4] == '-' && value[7] == '-' {
		return value[:len(sales.DateLayout)]
	}
	return value
}

// flexInt accepts 30, 30.0, "30" and null.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	text := unquote(data)
	if text == "" {
		*f = 0
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value != math.Trunc(value) {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = flexInt(value)
	return nil
}

// flexFloat accepts numbers, numeric strings and null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	text := strings.ReplaceAll(unquote(data), ",", ".")
	if text == "" {
		*f = 0
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexFloat(value)
	return nil
}

// flexBool accepts true/false and the backend's "Si"/"No" strings.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	text := strings.ToLower(unquote(data))
	switch text {
	case "true", "si", "sí", "yes", "1":
		*f = true
	case "false", "no", "0", "":
		*f = false
	default:
		return fmt.Errorf("not a boolean: %s", data)
	}
	return nil
}

// flexText accepts strings and numbers ("7" or 7 for the departure time).
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	*f = flexText(unquote(data))
	return nil
}

func unquote(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	return strings.TrimSpace(text)
}
