package sales

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
)

// Column declares how the grid reads, filters and sorts one field of a Sale.
type Column struct {
	Key        string
	Label      string
	Sortable   bool
	Filterable bool
	Numeric    bool
	Value      func(Sale) any
}

// Reserved keys for columns that carry no data.
const (
	ColumnSelect  = "select"
	ColumnActions = "actions"
)

// DefaultFilterColumn is the column preselected in the filter picker.
const DefaultFilterColumn = "name"

// Text is the stringified cell value used for filtering and display.
func (c Column) Text(s Sale) string {
	if c.Value == nil {
		return ""
	}
	return stringify(c.Value(s))
}

// Number is the numeric cell value used when sorting numeric columns.
func (c Column) Number(s Sale) float64 {
	if c.Value == nil {
		return 0
	}
	switch v := c.Value(s).(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "Si"
		}
		return "No"
	default:
		return fmt.Sprint(val)
	}
}

// Columns is an ordered column set.
type Columns []Column

// NormalizeColumnKey maps user supplied names (`passengerName`,
// `Seller-Email`) onto snake_case column keys.
func NormalizeColumnKey(key string) string {
	return strcase.ToSnake(strings.TrimSpace(key))
}

// Lookup finds a column by key.
func (cs Columns) Lookup(key string) (Column, bool) {
	key = NormalizeColumnKey(key)
	for _, col := range cs {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// Filterable returns the columns offered in the filter picker.
func (cs Columns) Filterable() Columns {
	out := make(Columns, 0, len(cs))
	for _, col := range cs {
		if col.Filterable && col.Value != nil {
			out = append(out, col)
		}
	}
	return out
}

// Data returns the columns that carry row values.
func (cs Columns) Data() Columns {
	out := make(Columns, 0, len(cs))
	for _, col := range cs {
		if col.Value != nil {
			out = append(out, col)
		}
	}
	return out
}

// DefaultColumns mirrors the sales table of the admin dashboard.
func DefaultColumns() Columns {
	return Columns{
		{Key: ColumnSelect, Label: ""},
		{Key: "id", Label: "ID", Sortable: true, Filterable: true, Numeric: true, Value: func(s Sale) any { return s.ID }},
		{Key: "name", Label: "Nombre", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Name }},
		{Key: "age", Label: "Edad", Sortable: true, Filterable: true, Numeric: true, Value: func(s Sale) any { return s.Age }},
		{Key: "route", Label: "Ruta", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Route }},
		{Key: "time", Label: "Hora", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Time }},
		{Key: "ferry", Label: "Ferry", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Ferry }},
		{Key: "intermediary", Label: "Intermediario", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Intermediary }},
		{Key: "date", Label: "Fecha", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Date }},
		{Key: "seller", Label: "Vendedor", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Seller }},
		{Key: "passport", Label: "Pasaporte", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Passport }},
		{Key: "phone", Label: "Teléfono", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Phone }},
		{Key: "status", Label: "Estado", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Status }},
		{Key: "notes", Label: "Notas", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Notes }},
		{Key: "payed", Label: "Pagado", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Payed }},
		{Key: "payment", Label: "Pago", Sortable: true, Filterable: true, Value: func(s Sale) any { return s.Payment }},
		{Key: "price", Label: "Precio", Sortable: true, Filterable: true, Numeric: true, Value: func(s Sale) any { return s.Price }},
		{Key: ColumnActions, Label: ""},
	}
}
