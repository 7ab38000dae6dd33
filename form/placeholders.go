package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// ReplacePlaceholders returns a copy of rules with every "{name}" token
// replaced by the string form of mappings[name], across all fields.
//
// Mappings are applied in ascending name order and each pass sees the result
// of the previous one, so a value containing another "{token}" is expanded
// only if that token sorts later. Tokens without a mapping are kept.
func ReplacePlaceholders(rules Rules, mappings Mappings) (Rules, error) {
	out := rules.clone()

	names := make([]string, 0, len(mappings))
	for name := range mappings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := cast.ToStringE(mappings[name])
		if err != nil {
			return nil, fmt.Errorf("form: placeholder %q: %w", name, err)
		}
		token := "{" + name + "}"
		for field, rule := range out {
			out[field] = strings.ReplaceAll(rule, token, value)
		}
	}
	return out, nil
}
