package model

import (
	"fmt"
	"strings"
)

// ParseError reports a log that could not be read as a table.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports required fields that a log does not provide.
type SchemaError struct {
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]\navailable: [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}
