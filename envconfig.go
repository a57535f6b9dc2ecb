package envconfig

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/ygrebnov/envconfig/streams"
)

// exit is replaced in tests.
var exit = os.Exit

type options struct {
	source  Source
	prefix  string
	streams streams.Streams
}

func (o *options) out() io.Writer {
	if o.streams == nil {
		return nil
	}
	return o.streams.Out()
}

func (o *options) errOut() io.Writer {
	if o.streams == nil {
		return os.Stderr
	}
	return o.streams.ErrOut()
}

// Option configures a bind call. Options are composable and can be passed in
// any order; a later option overrides an earlier one of the same kind.
type Option func(*options)

func buildOptions(opts []Option) *options {
	o := &options{source: Env()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSource binds from src instead of the process environment.
// Panics if src is nil.
func WithSource(src Source) Option {
	return func(o *options) {
		if src == nil {
			panic("envconfig: WithSource: src cannot be nil")
		}
		o.source = src
	}
}

// WithMap binds from m instead of the process environment. It is shorthand
// for WithSource(Map(m)).
func WithMap(m map[string]string) Option {
	return WithSource(Map(m))
}

// WithPrefix prepends prefix to every key. It is applied before the prefix
// the root type declares through Prefixer. No separator is inserted.
// Panics if prefix is empty.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix == "" {
			panic("envconfig: WithPrefix: prefix cannot be empty")
		}
		o.prefix = prefix
	}
}

// WithStreams routes diagnostics to s.Out() (one line per default or empty
// optional used) and fatal errors reported by MustLoad to s.ErrOut(). Without
// it, diagnostics are dropped and MustLoad writes to os.Stderr.
func WithStreams(s streams.Streams) Option {
	return func(o *options) {
		o.streams = s
	}
}

// Init binds dst, which must be a non-nil pointer to a struct. Fields tagged
// env:"-" keep their current values; every other field is overwritten. On
// error dst is left untouched.
//
// Init panics if dst is not a pointer to a struct or if its type does not form
// a valid schema.
func Init(dst any, opts ...Option) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		panic(fmt.Sprintf("envconfig: Init: dst must be a non-nil pointer to a struct, got %T", dst))
	}
	s := mustSchema(rv.Type().Elem())
	v, err := bindInto(s, rv.Elem(), buildOptions(opts))
	if err != nil {
		return err
	}
	rv.Elem().Set(v)
	return nil
}

// Load binds a new T. T must be a struct type. On error the zero T is returned.
// Load panics if T does not form a valid schema.
func Load[T any](opts ...Option) (T, error) {
	var cfg T
	s := mustSchema(reflect.TypeOf(&cfg).Elem())
	v, err := bindInto(s, reflect.Value{}, buildOptions(opts))
	if err != nil {
		return cfg, err
	}
	return v.Interface().(T), nil
}

// FromEnv binds a new T from the process environment.
func FromEnv[T any]() (T, error) {
	return Load[T]()
}

// FromMap binds a new T from m.
func FromMap[T any](m map[string]string) (T, error) {
	return Load[T](WithMap(m))
}

// MustLoad binds a new T. If binding fails, the error is written to the error
// stream and the process exits with status 1.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		if w := buildOptions(opts).errOut(); w != nil {
			fmt.Fprintln(w, err)
		}
		exit(1)
	}
	return cfg
}

// Provider binds a configuration of type T at most once and hands out the
// result to any number of callers.
//
// The first call to Get binds T with the options given to New; subsequent
// calls return the same pointer, or the same error. Get is safe for
// concurrent use.
type Provider[T any] struct {
	initOnce sync.Once
	opts     []Option
	cfg      *T
	initErr  error
}

// New constructs a Provider[T]. Nothing is read until the first Get.
func New[T any](opts ...Option) *Provider[T] {
	return &Provider[T]{opts: opts}
}

// Get binds the configuration on first use and returns it.
func (p *Provider[T]) Get() (*T, error) {
	p.initOnce.Do(func() {
		cfg, err := Load[T](p.opts...)
		if err != nil {
			p.initErr = err
			return
		}
		p.cfg = &cfg
	})
	if p.initErr != nil {
		return nil, p.initErr
	}
	return p.cfg, nil
}
