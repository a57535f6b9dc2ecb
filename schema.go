package envconfig

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const (
	keyTagName     = "env"
	defaultTagName = "default"
	prefixTagName  = "prefix"

	nestedOption = "nested"
	skipField    = "-"
)

// Prefixer is implemented by configuration types that declare a prefix for
// every key they read. The prefix applies when the type is the root of a bind
// call; nested fields use the prefix tag of the field that embeds them.
//
// Method sets decide whether a root type is a Prefixer, so an EnvPrefix
// promoted from an embedded struct becomes the root's prefix and covers every
// key of the bind, the embedded struct's own keys included. A root type
// overrides it by declaring its own EnvPrefix.
type Prefixer interface {
	EnvPrefix() string
}

var prefixerType = reflect.TypeOf((*Prefixer)(nil)).Elem()

// Field describes how one struct field is resolved.
type Field struct {
	// Name is the Go identifier of the field.
	Name string
	// Index is the field's position within its struct.
	Index int
	// Type is the declared type of the field.
	Type reflect.Type

	// Key is the unprefixed key read for a scalar field. Empty for nested fields.
	Key string
	// Default is the literal used when Key is absent, if HasDefault is set.
	Default    string
	HasDefault bool
	// Optional fields are pointers left nil when Key is absent.
	Optional bool

	// Nested fields are bound recursively from Schema with Prefix appended
	// to the current prefix.
	Nested bool
	Prefix string
	Schema *Schema

	parse parseFunc
}

// Schema is the ordered list of fields resolved for one struct type.
type Schema struct {
	Type   reflect.Type
	Prefix string
	Fields []Field
}

var schemas sync.Map // reflect.Type -> *Schema

// SchemaFor returns the schema of T, which must be a struct type.
func SchemaFor[T any]() (*Schema, error) {
	return SchemaOf(reflect.TypeOf((*T)(nil)).Elem())
}

// SchemaOf returns the schema of t. Pointer types are dereferenced once.
// Schemas are extracted once per type and cached; a *SchemaError is returned
// if the type cannot be bound. The result is a copy: changing it does not
// affect later binds.
func SchemaOf(t reflect.Type) (*Schema, error) {
	s, err := cachedSchema(t)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}

func cachedSchema(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, &SchemaError{Reason: "nil type"}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if s, ok := schemas.Load(t); ok {
		return s.(*Schema), nil
	}
	s, err := extract(t, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}
	actual, _ := schemas.LoadOrStore(t, s)
	return actual.(*Schema), nil
}

// mustSchema is SchemaOf for the bind entry points: t must be a struct type
// and schema errors panic.
func mustSchema(t reflect.Type) *Schema {
	if t.Kind() != reflect.Struct {
		panic(&SchemaError{Type: t, Reason: "not a struct type"})
	}
	s, err := cachedSchema(t)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) clone() *Schema {
	c := *s
	c.Fields = append([]Field(nil), s.Fields...)
	for i := range c.Fields {
		if c.Fields[i].Schema != nil {
			c.Fields[i].Schema = c.Fields[i].Schema.clone()
		}
	}
	return &c
}

func extract(t reflect.Type, visiting map[reflect.Type]bool) (*Schema, error) {
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Reason: "not a struct type"}
	}
	if visiting[t] {
		return nil, &SchemaError{Type: t, Reason: "recursive nesting"}
	}
	visiting[t] = true
	defer delete(visiting, t)

	s := &Schema{Type: t, Prefix: declaredPrefix(t)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f, skip, err := extractField(t, sf, visiting)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		f.Index = i
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

func extractField(owner reflect.Type, sf reflect.StructField, visiting map[reflect.Type]bool) (Field, bool, error) {
	fail := func(reason string) (Field, bool, error) {
		return Field{}, false, &SchemaError{Type: owner, Field: sf.Name, Reason: reason}
	}

	tag := sf.Tag.Get(keyTagName)
	if tag == skipField {
		return Field{}, true, nil
	}
	name, opts, _ := strings.Cut(tag, ",")
	nested := false
	for _, opt := range strings.Split(opts, ",") {
		switch opt {
		case "":
		case nestedOption:
			nested = true
		default:
			return fail(fmt.Sprintf("unknown option %q", opt))
		}
	}
	def, hasDefault := sf.Tag.Lookup(defaultTagName)
	prefix, hasPrefix := sf.Tag.Lookup(prefixTagName)

	f := Field{
		Name:       sf.Name,
		Type:       sf.Type,
		Default:    def,
		HasDefault: hasDefault,
		Nested:     nested || hasPrefix,
		Prefix:     prefix,
	}

	if !f.Nested {
		if p := parserFor(sf.Type); p != nil {
			f.parse = p
		} else if sf.Type.Kind() == reflect.Pointer {
			if p := parserFor(sf.Type.Elem()); p != nil {
				f.parse = p
				f.Optional = true
			}
		}
		if f.parse == nil {
			if structType(sf.Type) == nil {
				return fail("unsupported type " + sf.Type.String())
			}
			f.Nested = true
		}
	}

	if f.Nested {
		st := structType(sf.Type)
		if st == nil {
			return fail("nested field must be a struct or a pointer to a struct")
		}
		if name != "" {
			return fail("key has no effect on a nested field; use the prefix tag")
		}
		if hasDefault {
			return fail("nested field cannot have a default")
		}
		child, err := extract(st, visiting)
		if err != nil {
			return Field{}, false, err
		}
		f.Schema = child
		return f, false, nil
	}

	if f.Optional && hasDefault {
		return fail("optional field cannot have a default")
	}
	f.Key = name
	if f.Key == "" {
		f.Key = toScreamingSnake(sf.Name)
	}
	return f, false, nil
}

// structType returns the struct type behind t or *t, or nil.
func structType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func declaredPrefix(t reflect.Type) string {
	if t.Implements(prefixerType) {
		return reflect.Zero(t).Interface().(Prefixer).EnvPrefix()
	}
	if reflect.PointerTo(t).Implements(prefixerType) {
		return reflect.New(t).Interface().(Prefixer).EnvPrefix()
	}
	return ""
}
