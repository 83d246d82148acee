// Package typeinfer classifies leaf scalar values into the SQL column
// type they should be stored as.
package typeinfer

import "strconv"

// Kind is a SQL storage class, mirroring SQLite's type affinity set.
// See https://www.sqlite.org/datatype3.html.
type Kind int

const (
	Null Kind = iota
	Integer
	Real
	Text
	Blob
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "NULL"
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Text:
		return "TEXT"
	case Blob:
		return "BLOB"
	default:
		return "TEXT"
	}
}

// Infer returns the Kind for a scalar value. present is false when the
// value is missing (xmltree marks an element with no text this way); a
// present empty string is Text.
// Integer and real parses are attempted in order before falling back to
// Text; Blob is never produced from textual input.
func Infer(value string, present bool) Kind {
	if !present {
		return Null
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return Integer
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return Real
	}
	return Text
}
