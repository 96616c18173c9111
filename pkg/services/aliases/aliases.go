// Package aliases maps dataset-specific raw column names to canonical field
// names. The mapping is static configuration: loaded once, immutable after.
package aliases

import (
	"fmt"
	"strings"
)

// FieldType declares how the normalizer coerces a canonical field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
	FieldDate
	FieldGeo
)

func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FieldText, nil
	case "number":
		return FieldNumber, nil
	case "date":
		return FieldDate, nil
	case "geo":
		return FieldGeo, nil
	}
	return 0, fmt.Errorf("unknown field type %q", s)
}

// FieldSpec declares one canonical field: its type, whether a record lacking
// it is excluded, and the raw spellings that resolve to it. The canonical
// name always resolves to itself.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Aliases  []string
}

// KindSchema is the alias configuration for one dataset kind.
type KindSchema struct {
	Kind       string
	DateLayout string
	Fields     []FieldSpec
}

type kindIndex struct {
	schema KindSchema
	lookup map[string]string // normalized raw spelling -> canonical name
}

// Map resolves raw column names per dataset kind. Pure lookup, no side
// effects; absence is a valid outcome, not a failure.
type Map struct {
	kinds map[string]*kindIndex
}

// NewMap builds a Map from kind schemas. Every canonical name is registered
// as its own alias, so resolving an already-canonical name is the identity.
func NewMap(schemas []KindSchema) (*Map, error) {
	m := &Map{kinds: make(map[string]*kindIndex, len(schemas))}
	for _, ks := range schemas {
		if ks.Kind == "" {
			return nil, fmt.Errorf("schema with empty dataset kind")
		}
		if _, dup := m.kinds[ks.Kind]; dup {
			return nil, fmt.Errorf("duplicate schema for dataset kind %q", ks.Kind)
		}
		idx := &kindIndex{schema: ks, lookup: make(map[string]string)}
		for _, f := range ks.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("kind %q: field with empty canonical name", ks.Kind)
			}
			spellings := append([]string{f.Name}, f.Aliases...)
			for _, raw := range spellings {
				key := NormalizeHeader(raw)
				if existing, ok := idx.lookup[key]; ok && existing != f.Name {
					return nil, fmt.Errorf("kind %q: alias %q maps to both %q and %q",
						ks.Kind, raw, existing, f.Name)
				}
				idx.lookup[key] = f.Name
			}
		}
		m.kinds[ks.Kind] = idx
	}
	return m, nil
}

// Resolve maps a raw column header to its canonical field name. Lookup is
// case-insensitive and whitespace-normalized. ok=false means unmapped; the
// caller decides whether that matters.
func (m *Map) Resolve(kind, rawColumn string) (string, bool) {
	idx, ok := m.kinds[kind]
	if !ok {
		return "", false
	}
	canonical, ok := idx.lookup[NormalizeHeader(rawColumn)]
	return canonical, ok
}

// Schema returns the field configuration for a dataset kind.
func (m *Map) Schema(kind string) (KindSchema, bool) {
	idx, ok := m.kinds[kind]
	if !ok {
		return KindSchema{}, false
	}
	return idx.schema, true
}

// RequiredFields returns the required canonical field names for a kind.
func (m *Map) RequiredFields(kind string) []string {
	idx, ok := m.kinds[kind]
	if !ok {
		return nil
	}
	var out []string
	for _, f := range idx.schema.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// NormalizeHeader lowercases a header and collapses whitespace runs to a
// single space. "  Store   Name " and "store name" normalize identically.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
