package schema

import (
	"errors"
	"fmt"
)

// FormType identifies a registered form layout.
type FormType string

const (
	// FormJobPosting is the recruiting job-posting form.
	FormJobPosting FormType = "job_posting"
)

// ErrUnknownSchema is returned when no form is registered for a type.
var ErrUnknownSchema = errors.New("unknown form schema")

var registry = map[FormType][]FieldSpec{
	FormJobPosting: jobPostingFields,
}

// Fields returns the ordered field list for formType. The returned slice
// is a copy; the registry is the single source of truth for field order.
func Fields(formType FormType) ([]FieldSpec, error) {
	fields, ok := registry[formType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, formType)
	}
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out, nil
}

// FieldByKey looks a field up inside an ordered field list.
func FieldByKey(fields []FieldSpec, key string) (FieldSpec, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Keys returns the field keys in schema order.
func Keys(fields []FieldSpec) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return keys
}
