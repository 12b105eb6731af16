package statblock

import (
	"bytes"
	"encoding/json"
)

// Record field names. They double as the keys of a FieldSet and as the
// Field reported by errors.
const (
	FieldName            = "name"
	FieldLevel           = "level"
	FieldRarity          = "rarity"
	FieldAlignment       = "alignment"
	FieldSize            = "size"
	FieldTraits          = "traits"
	FieldDescription     = "description"
	FieldRecallKnowledge = "recall_knowledge"
	FieldPFS             = "pfs"
	FieldFamily          = "family"
)

// FieldKind identifies which variant a Field holds.
type FieldKind int

// Field kinds.
const (
	FieldAbsent FieldKind = iota
	FieldScalar
	FieldTable
	FieldList
)

// Field is the outcome of one extraction strategy.
// The zero value is an absent field.
type Field struct {
	Kind  FieldKind
	Text  string
	Table *Table
	List  []string
}

// Absent returns a field carrying no value.
func Absent() Field {
	return Field{}
}

// Scalar returns a field holding a single text value.
func Scalar(text string) Field {
	return Field{Kind: FieldScalar, Text: text}
}

// TableField returns a field holding a key-value table.
func TableField(t *Table) Field {
	return Field{Kind: FieldTable, Table: t}
}

// List returns a field holding an ordered list of texts.
func List(items []string) Field {
	return Field{Kind: FieldList, List: items}
}

// IsAbsent reports whether the field carries no value.
func (f Field) IsAbsent() bool {
	return f.Kind == FieldAbsent
}

// Table is an insertion-ordered string mapping.
// Setting an existing key replaces its value in place.
type Table struct {
	keys   []string
	values map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string]string)}
}

// Set stores value under key. The key keeps the position of its first insertion.
func (t *Table) Set(key, value string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// MarshalJSON encodes the table as a JSON object preserving key order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FieldSet collects per-field outcomes from independent extractors.
// A field holds either a value or the error that prevented it; the
// latest write wins.
type FieldSet struct {
	fields map[string]Field
	errs   map[string]error
	order  []string
}

// NewFieldSet returns an empty FieldSet.
func NewFieldSet() *FieldSet {
	return &FieldSet{
		fields: make(map[string]Field),
		errs:   make(map[string]error),
	}
}

// Set records a value for name and clears any earlier failure.
func (s *FieldSet) Set(name string, f Field) {
	s.touch(name)
	delete(s.errs, name)
	s.fields[name] = f
}

// Fail records that name could not be extracted.
func (s *FieldSet) Fail(name string, err error) {
	s.touch(name)
	delete(s.fields, name)
	s.errs[name] = err
}

// Record stores the outcome of an extractor: a value on success, a failure otherwise.
func (s *FieldSet) Record(name string, f Field, err error) {
	if err != nil {
		s.Fail(name, err)
		return
	}
	s.Set(name, f)
}

// Get returns the field stored under name. A field never written is absent.
func (s *FieldSet) Get(name string) (Field, error) {
	if err, ok := s.errs[name]; ok {
		return Field{}, err
	}
	return s.fields[name], nil
}

// Errors returns recorded failures in the order their fields were first written.
func (s *FieldSet) Errors() []error {
	var errs []error
	for _, name := range s.order {
		if err, ok := s.errs[name]; ok {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *FieldSet) touch(name string) {
	if _, ok := s.fields[name]; ok {
		return
	}
	if _, ok := s.errs[name]; ok {
		return
	}
	s.order = append(s.order, name)
}
