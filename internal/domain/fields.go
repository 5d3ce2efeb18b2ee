package domain

import "strings"

// NoPixSentinel is the PIX-type option meaning "does not accept PIX".
// It is never stored and never summarized.
const NoPixSentinel = "— Não recebe PIX —"

// Value is a raw form value: a scalar, or a list when the field name was
// submitted more than once.
type Value struct {
	items []string
	list  bool
}

// Scalar returns a single-valued Value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// List returns a multi-valued Value. The items are copied.
func List(items ...string) Value {
	return Value{items: append([]string(nil), items...), list: true}
}

// IsList reports whether v came from a repeated field name.
func (v Value) IsList() bool { return v.list }

// Items returns a copy of the underlying values.
func (v Value) Items() []string {
	return append([]string(nil), v.items...)
}

// String returns the scalar value, or list items joined with ", ".
func (v Value) String() string {
	return strings.Join(v.items, ", ")
}

// Present returns the items that may be stored or summarized, dropping
// whitespace-only entries and the PIX placeholder.
func (v Value) Present() []string {
	var out []string
	for _, item := range v.items {
		if blankItem(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Blank reports whether v must be left out of payloads and summaries: no
// value at all, or only whitespace and PIX placeholder entries.
func (v Value) Blank() bool {
	return len(v.Present()) == 0
}

func blankItem(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NoPixSentinel
}

func (v Value) add(s string) Value {
	return Value{items: append(v.Items(), s), list: true}
}

// Field is one named raw value.
type Field struct {
	Name  string
	Value Value
}

// RawFields holds collected form values in order of first appearance.
type RawFields []Field

// Get returns the value for name.
func (r RawFields) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// With returns r with name set to v, replacing any previous value in place.
func (r RawFields) With(name string, v Value) RawFields {
	for i, f := range r {
		if f.Name == name {
			out := append(RawFields(nil), r...)
			out[i].Value = v
			return out
		}
	}
	return append(append(RawFields(nil), r...), Field{Name: name, Value: v})
}

// Has reports whether name holds the given option, either as the scalar
// value or as one of the list items. Used to re-check boxes on re-render.
func (r RawFields) Has(name, option string) bool {
	v, ok := r.Get(name)
	if !ok {
		return false
	}
	for _, item := range v.items {
		if item == option {
			return true
		}
	}
	return false
}

// Text returns the scalar text for name, or "" when absent.
func (r RawFields) Text(name string) string {
	v, _ := r.Get(name)
	return v.String()
}

// FormPair is one name=value pair of a submitted form, in document order.
type FormPair struct {
	Name  string
	Value string
}

// CollectFields turns submitted pairs into RawFields. A name that appears more
// than once becomes a list of its values in order of appearance; a single
// occurrence stays scalar.
func CollectFields(pairs []FormPair) RawFields {
	var out RawFields
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if i, ok := index[p.Name]; ok {
			out[i].Value = out[i].Value.add(p.Value)
			continue
		}
		index[p.Name] = len(out)
		out = append(out, Field{Name: p.Name, Value: Scalar(p.Value)})
	}
	return out
}
