package domain

import (
	"bytes"
	"encoding/json"
)

// FieldMapping decides where raw form fields land in storage.
type FieldMapping struct {
	// Columns renames form fields; fields not listed keep their name.
	Columns map[string]string
	// Multi lists fields that are always stored as lists.
	Multi map[string]bool
}

// DefaultMapping is the field-to-column table shared by all categories.
var DefaultMapping = FieldMapping{
	Columns: map[string]string{
		"refeicao":        "refeicoes",
		"habilidade":      "habilidades",
		"pix_tipo":        "pix_tipo",
		"pix_chave":       "pix_chave",
		"pix_titular":     "pix_titular",
		"ultima_vez":      "ultima_vez_visto",
		"saude":           "condicao_saude",
		"informante_nome": "informante_nome",
		"informante_tel":  "informante_tel",
	},
	Multi: map[string]bool{
		"recursos":     true,
		"aceita":       true,
		"refeicao":     true,
		"necessidades": true,
		"habilidade":   true,
	},
}

// Column returns the storage column for a form field.
func (m FieldMapping) Column(field string) string {
	if c, ok := m.Columns[field]; ok {
		return c
	}
	return field
}

// Payload is an insert-ready record: ordered columns, each holding a string
// or a []string. The city reference is always the first column.
type Payload struct {
	columns []string
	values  map[string]any
}

func newPayload(cityID string) *Payload {
	p := &Payload{values: make(map[string]any)}
	p.set(ColumnCityID, cityID)
	return p
}

func (p *Payload) set(column string, v any) {
	if _, ok := p.values[column]; !ok {
		p.columns = append(p.columns, column)
	}
	p.values[column] = v
}

// Columns returns the column names in insertion order.
func (p *Payload) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Values returns the column values in the same order as Columns.
func (p *Payload) Values() []any {
	out := make([]any, len(p.columns))
	for i, c := range p.columns {
		out[i] = p.values[c]
	}
	return out
}

// Get returns the value stored for column.
func (p *Payload) Get(column string) (any, bool) {
	v, ok := p.values[column]
	return v, ok
}

// Map returns a copy of the payload as a plain map.
func (p *Payload) Map() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the payload as a JSON object preserving column order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range p.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.values[c])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MapToPayload builds a storage payload from raw form values. Blank values are
// dropped, field names are translated through the mapping, and multi-valued
// fields are always lists. The payload starts with the resolved city id.
func MapToPayload(cityID string, raw RawFields, m FieldMapping) *Payload {
	p := newPayload(cityID)
	for _, f := range raw {
		if f.Value.Blank() {
			continue
		}
		column := m.Column(f.Name)
		if m.Multi[f.Name] || f.Value.IsList() {
			p.set(column, f.Value.Present())
			continue
		}
		p.set(column, f.Value.String())
	}
	return p
}

// NewPayload validates raw against the category schema and maps it to a
// storage payload. Unknown field names and blank required fields are
// rejected with a *ValidationError.
func NewPayload(c Category, cityID string, raw RawFields) (*Payload, error) {
	schema, ok := Schemas[c]
	if !ok {
		return nil, ErrConfigurationGap
	}
	for _, f := range raw {
		if !schema.Allows(f.Name) {
			return nil, &ValidationError{Field: f.Name, Message: "campo desconhecido"}
		}
	}
	for _, name := range schema.Required {
		if v, ok := raw.Get(name); !ok || v.Blank() {
			return nil, &ValidationError{Field: name, Message: "campo obrigatório"}
		}
	}
	return MapToPayload(cityID, raw, DefaultMapping), nil
}
