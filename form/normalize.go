package form

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// DefaultTagName is the struct tag consulted for field names.
const DefaultTagName = "form"

// Normalize turns form data into the map shape the engine expects.
//
// A map[string]any is returned as is. Other string-keyed maps are copied
// into a map[string]any. Structs and struct pointers contribute their
// exported fields by value, keyed by tagName or, untagged, by the field name.
// Fields of embedded structs are promoted; a "-" tag skips the field.
func Normalize(formData any, tagName string) (map[string]any, error) {
	if m, ok := formData.(map[string]any); ok {
		return m, nil
	}

	rv := reflect.ValueOf(formData)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrUnsupportedFormData, rv.Type())
		}
		rv = rv.Elem()
	}

	if tagName == "" {
		tagName = DefaultTagName
	}

	switch {
	case rv.Kind() == reflect.Struct:
		return structFields(rv, tagName), nil
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		return mapEntries(rv)
	case !rv.IsValid():
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedFormData)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormData, rv.Type())
	}
}

// structFields copies the visible exported fields one level deep; nested
// struct values such as time.Time are kept intact.
func structFields(rv reflect.Value, tagName string) map[string]any {
	out := make(map[string]any)
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || (f.Anonymous && isStruct(f.Type)) {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			continue
		}
		out[name] = fv.Interface()
	}
	return out
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func mapEntries(rv reflect.Value) (map[string]any, error) {
	out := make(map[string]any, rv.Len())
	if rv.IsNil() {
		return out, nil
	}
	if err := mapstructure.Decode(rv.Interface(), &out); err != nil {
		return nil, fmt.Errorf("form: normalize %s: %w", rv.Type(), err)
	}
	return out, nil
}
