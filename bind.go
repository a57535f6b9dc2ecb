package envconfig

import (
	"fmt"
	"io"
	"reflect"
)

// binder resolves schemas against one source. It keeps no state between
// fields apart from the diagnostics writer.
type binder struct {
	src Source
	out io.Writer
}

// bind fills v, a settable struct value of type s.Type, field by field in
// declaration order. It stops at the first field that cannot be resolved.
func (b *binder) bind(s *Schema, v reflect.Value, prefix string) error {
	for i := range s.Fields {
		f := &s.Fields[i]
		fv := v.Field(f.Index)

		if f.Nested {
			if err := b.bindNested(f, fv, prefix+f.Prefix); err != nil {
				return err
			}
			continue
		}

		key := prefix + f.Key
		raw, ok := b.src.Lookup(key)
		switch {
		case ok:
		case f.Optional:
			b.notef("%s not set, leaving optional field empty", key)
			fv.Set(reflect.Zero(fv.Type()))
			continue
		case f.HasDefault:
			b.notef("%s not set, using default %q", key, f.Default)
			raw = f.Default
		default:
			return &MissingError{Key: key}
		}

		pv, err := f.parse(raw)
		if err != nil {
			return &ParseError{Key: key, Err: err}
		}
		if f.Optional {
			p := reflect.New(pv.Type())
			p.Elem().Set(pv)
			pv = p
		}
		fv.Set(pv)
	}
	return nil
}

// bindNested binds a nested schema. Pointer fields always receive a freshly
// allocated struct, so the caller's original pointee is never written.
func (b *binder) bindNested(f *Field, fv reflect.Value, prefix string) error {
	if fv.Kind() != reflect.Pointer {
		return b.bind(f.Schema, fv, prefix)
	}
	p := reflect.New(f.Schema.Type)
	if !fv.IsNil() {
		p.Elem().Set(fv.Elem())
	}
	if err := b.bind(f.Schema, p.Elem(), prefix); err != nil {
		return err
	}
	fv.Set(p)
	return nil
}

func (b *binder) notef(format string, args ...any) {
	if b.out == nil {
		return
	}
	fmt.Fprintf(b.out, "envconfig: "+format+"\n", args...)
}

// bindInto resolves s into a copy of base and returns the copy. base is never
// modified; on error the returned value is invalid.
func bindInto(s *Schema, base reflect.Value, o *options) (reflect.Value, error) {
	v := reflect.New(s.Type).Elem()
	if base.IsValid() {
		v.Set(base)
	}
	b := &binder{src: o.source, out: o.out()}
	if err := b.bind(s, v, o.prefix+s.Prefix); err != nil {
		return reflect.Value{}, err
	}
	return v, nil
}
