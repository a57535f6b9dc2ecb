package envconfig

import (
	"errors"
	"fmt"
	"reflect"
)

// Exported error categories. Bind calls only ever return a *MissingError or a
// *ParseError; both match their category with errors.Is.
//   - ErrMissing: a required key is absent from the source.
//   - ErrParse: a sourced value or a default literal does not parse into the field type.
//   - ErrInvalidSchema: the struct type cannot be turned into a schema.
var (
	ErrMissing       = errors.New("env variable is missing")
	ErrParse         = errors.New("failed to parse env variable")
	ErrInvalidSchema = errors.New("invalid schema")
)

// MissingError reports a required key that the source does not hold.
// Key is fully qualified with every prefix that applied.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissing, e.Key)
}

func (e *MissingError) Is(target error) bool { return target == ErrMissing }

// ParseError reports a value that could not be converted to the field type.
// Err holds the converter's error.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrParse, e.Key)
	}
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Key, e.Err)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError is a programming error in a configuration type: an optional
// field with a default, an unsupported field type, and so on. It is detected
// when the schema is extracted, before any key is looked up.
type SchemaError struct {
	Type   reflect.Type
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s %v: %s", ErrInvalidSchema, e.Type, e.Reason)
	}
	return fmt.Sprintf("%s %v: field %s: %s", ErrInvalidSchema, e.Type, e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }
