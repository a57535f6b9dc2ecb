// Package envconfig binds configuration structs from environment variables or
// an in-memory string map.
//
// Each exported field of a struct is resolved from one key:
//  1. The key is the env tag, or the field name converted to
//     SCREAMING_SNAKE_CASE (DbHost → DB_HOST).
//  2. A `default` tag supplies a literal used when the key is absent.
//  3. Pointer fields (*T) are optional and stay nil when the key is absent.
//  4. Struct fields are bound recursively. A `prefix` tag on the field is
//     appended to the current prefix for that recursion only; env:",nested"
//     recurses without one. A pointer to a struct is always allocated and its
//     keys are required like those of a value field; only scalar pointers
//     are optional.
//  5. A root type may declare a prefix for all of its keys by implementing
//     Prefixer.
//
// Prefixes are joined by plain concatenation, so separators such as a trailing
// underscore belong in the prefix itself.
//
// Binding is fail-fast: the first field, in declaration order and depth first,
// that is missing (*MissingError) or fails to parse (*ParseError) aborts the
// call, and nothing is written to the destination.
//
// Typical usage:
//
//	type DB struct {
//	    Host string `env:"HOST"`
//	    Port uint16 `env:"PORT" default:"5432"`
//	}
//
//	type Config struct {
//	    Primary DB    `prefix:"DB_"`
//	    Replica DB    `prefix:"REPLICA_"`
//	    Debug   *bool
//	}
//
//	cfg, err := envconfig.FromEnv[Config]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Field types parse through Decoder, encoding.TextUnmarshaler, or the built-in
// support for strings, booleans, integers, floats and time.Duration.
package envconfig
