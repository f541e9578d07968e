package conserje // import "humano.dev/conserje"

import (
	"bytes"
	_ "embed"
	"encoding/json"
)

// Schema is the JSON schema of the encoded Document.
//
//go:embed conserje.schema.json
var Schema []byte

// Document is the generated concierge data file.
type Document struct {
	Items []Item `json:"items"`
	Rules []Rule `json:"reglas"`

	// Sheets reports what each known sheet contributed.
	Sheets []SheetStats `json:"-"`
}

// Rule is a governance rule from the rules sheet.
type Rule struct {
	ID          string `json:"regla_id"`
	Key         string `json:"regla_clave"`
	Description string `json:"descripcion_practica"`
}

type SheetStats struct {
	Name  string
	Found bool
	Rows  int
	Items int
	Rules int
}

// Item is one converted row. Values are string, []string, or nil for a
// null time. Fields keep the order in which they were set.
type Item struct {
	keys   []string
	values map[string]any
}

func newItem() Item {
	return Item{values: make(map[string]any)}
}

// Set stores a field value. A field that is set again keeps its position.
func (it *Item) Set(field string, v any) {
	if it.values == nil {
		it.values = make(map[string]any)
	}
	if _, ok := it.values[field]; !ok {
		it.keys = append(it.keys, field)
	}
	it.values[field] = v
}

func (it Item) Get(field string) (any, bool) {
	v, ok := it.values[field]
	return v, ok
}

// String returns a string field, or "" for missing and non-string fields.
func (it Item) String(field string) string {
	s, _ := it.values[field].(string)
	return s
}

// List returns an array field.
func (it Item) List(field string) []string {
	l, _ := it.values[field].([]string)
	return l
}

// Fields returns the field names in order.
func (it Item) Fields() []string {
	return append([]string(nil), it.keys...)
}

// MarshalJSON writes the fields as an object in insertion order.
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range it.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode adds a newline
		buf.WriteByte(':')
		if err := enc.Encode(it.values[k]); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back, keeping the field order of the input.
func (it *Item) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*it = newItem()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v any
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			var l []string
			if err := json.Unmarshal(raw, &l); err != nil {
				return err
			}
			v = l
		} else if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		it.Set(key, v)
	}
	_, err := dec.Token()
	return err
}
