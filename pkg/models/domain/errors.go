package domain

import (
	"errors"
	"fmt"
)

// SchemaError marks a dataset kind as unusable: missing required canonical
// fields, an empty dataset or an unreadable source. Fatal for views depending
// on that kind, non-fatal for every other kind.
type SchemaError struct {
	Kind   DatasetKind
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for dataset %q: %s", e.Kind, e.Reason)
}

// InvalidFilterError rejects a filter update at the session boundary.
// The prior snapshot stays in effect.
type InvalidFilterError struct {
	Dimension string
	Reason    string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter on dimension %q: %s", e.Dimension, e.Reason)
}

func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

func IsInvalidFilter(err error) bool {
	var fe *InvalidFilterError
	return errors.As(err, &fe)
}
