package envconfig

import "os"

// Source looks up raw string values by key. Implementations must not have
// side effects and must answer consistently for the duration of a bind call.
type Source interface {
	Lookup(key string) (value string, ok bool)
}

type envSource struct{}

func (envSource) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// Env returns a Source backed by the live process environment. Callers must
// not modify the environment while a bind call is running.
func Env() Source { return envSource{} }

type mapSource map[string]string

func (m mapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Map returns a Source that reads from m. The map is never modified; a nil
// map behaves as an empty source.
func Map(m map[string]string) Source { return mapSource(m) }
