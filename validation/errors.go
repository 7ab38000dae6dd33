package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Errors maps a field name to its failure messages in the order they were
// produced.
type Errors map[string][]string

func NewErrors() Errors {
	return make(Errors)
}

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for field, or "" when the field passed.
func (e Errors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) All(field string) []string {
	return e[field]
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the failing field names in ascending order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f, msgs := range e {
		if len(msgs) > 0 {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) IsEmpty() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

func (e Errors) Error() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f][0]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
