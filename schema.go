package deadcsv

import (
	"errors"
	"strings"
)

// ErrEmptySchema is returned when a schema is constructed with no fields.
var ErrEmptySchema = errors.New("deadcsv: schema has no fields")

// Schema is an ordered, named field list defining one record shape. It is
// immutable after construction and safe to share between any number of
// Readers and Writers.
type Schema struct {
	fields []string
	sep    byte
	header string
}

// NewSchema builds a schema from an ordered field-name list and a single-byte
// separator. A zero separator defaults to ','. The header line is computed
// once here and cached for the lifetime of the schema.
func NewSchema(fields []string, sep byte) (*Schema, error) {
	if len(fields) == 0 {
		return nil, ErrEmptySchema
	}
	if sep == 0 {
		sep = ','
	}

	s := &Schema{
		fields: append([]string(nil), fields...),
		sep:    sep,
	}
	s.header = strings.Join(s.fields, string(sep))
	return s, nil
}

// Len reports the number of fields in the schema.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the ordered field names.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Separator returns the field separator byte.
func (s *Schema) Separator() byte {
	return s.sep
}

// Header returns the cached header line: field names joined by the separator,
// with no trailing separator or newline.
func (s *Schema) Header() string {
	return s.header
}

// Index returns the position of the first field named name, or -1 if the
// schema has no such field.
func (s *Schema) Index(name string) int {
	for i, f := range s.fields {
		if f == name {
			return i
		}
	}
	return -1
}
