package envconfig

import (
	"encoding"
	"reflect"
	"strconv"
	"time"
)

// Decoder is implemented by types that parse themselves from a raw value.
// Decode is called on a pointer to a fresh zero value.
type Decoder interface {
	Decode(value string) error
}

// parseFunc converts a raw string into a value of the field's type.
type parseFunc func(raw string) (reflect.Value, error)

var (
	decoderType         = reflect.TypeOf((*Decoder)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
)

// parserFor returns the parse function for t, or nil if values of t have no
// string form. Decoder wins over encoding.TextUnmarshaler, which wins over
// the built-in kinds.
func parserFor(t reflect.Type) parseFunc {
	switch {
	case reflect.PointerTo(t).Implements(decoderType):
		return func(raw string) (reflect.Value, error) {
			v := reflect.New(t)
			if err := v.Interface().(Decoder).Decode(raw); err != nil {
				return reflect.Value{}, err
			}
			return v.Elem(), nil
		}
	case reflect.PointerTo(t).Implements(textUnmarshalerType):
		return func(raw string) (reflect.Value, error) {
			v := reflect.New(t)
			if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
				return reflect.Value{}, err
			}
			return v.Elem(), nil
		}
	case t == durationType:
		return func(raw string) (reflect.Value, error) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(d), nil
		}
	}

	switch t.Kind() {
	case reflect.String:
		return func(raw string) (reflect.Value, error) {
			v := reflect.New(t).Elem()
			v.SetString(raw)
			return v, nil
		}
	case reflect.Bool:
		return func(raw string) (reflect.Value, error) {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetBool(b)
			return v, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(raw string) (reflect.Value, error) {
			n, err := strconv.ParseInt(raw, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetInt(n)
			return v, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(raw string) (reflect.Value, error) {
			n, err := strconv.ParseUint(raw, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetUint(n)
			return v, nil
		}
	case reflect.Float32, reflect.Float64:
		return func(raw string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(raw, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetFloat(f)
			return v, nil
		}
	}
	return nil
}
