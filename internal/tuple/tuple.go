// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package tuple

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInconsistentEntry is returned when the fields and the tuple of an entry differ in size.
	ErrInconsistentEntry = errors.New("fields and tuple size mismatch")
)

// lineBreaks escapes line breaks so that a rendering always fits on one line.
var lineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// Fields is the ordered list of names describing the positions of a Tuple.
type Fields []string

// Print renders the fields as ['a', 'b'].
func (f Fields) Print() string {
	builder := new(strings.Builder)
	builder.WriteString("[")
	for i, name := range f {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString("'" + lineBreaks.Replace(name) + "'")
	}
	builder.WriteString("]")
	return builder.String()
}

// Index returns the position of name, or -1 if missing.
func (f Fields) Index(name string) int {
	return slices.Index(f, name)
}

// Tuple is an ordered list of values.
type Tuple []any

// Print renders the tuple as ['hello', 1, null]. Strings are single quoted,
// nil values are printed as null and line breaks are escaped as \n and \r.
func (t Tuple) Print() string {
	builder := new(strings.Builder)
	builder.WriteString("[")
	for i, value := range t {
		if i > 0 {
			builder.WriteString(", ")
		}
		writeValue(builder, value)
	}
	builder.WriteString("]")
	return builder.String()
}

// writeValue leaves Stringer values to fmt, which recovers from a String method
// panicking on a nil receiver.
func writeValue(builder *strings.Builder, value any) {
	switch v := value.(type) {
	case nil:
		builder.WriteString("null")
	case string:
		builder.WriteString("'" + lineBreaks.Replace(v) + "'")
	case []byte:
		builder.WriteString("'" + lineBreaks.Replace(string(v)) + "'")
	default:
		builder.WriteString(lineBreaks.Replace(fmt.Sprint(v)))
	}
}

// Entry pairs a Tuple with the Fields describing it.
type Entry struct {
	Fields Fields
	Tuple  Tuple
}

// NewEntry returns an Entry after checking that fields and tuple have the same size.
func NewEntry(fields Fields, tuple Tuple) (*Entry, error) {
	if len(fields) != len(tuple) {
		return nil, fmt.Errorf("%w: %d fields, %d values", ErrInconsistentEntry, len(fields), len(tuple))
	}

	return &Entry{Fields: fields, Tuple: tuple}, nil
}

// Value returns the value stored under name and whether the field exists.
func (e *Entry) Value(name string) (any, bool) {
	idx := e.Fields.Index(name)
	if idx < 0 || idx >= len(e.Tuple) {
		return nil, false
	}

	return e.Tuple[idx], true
}

// Print renders the entry as fields followed by the tuple, separated by a space.
func (e *Entry) Print() string {
	return e.Fields.Print() + " " + e.Tuple.Print()
}
