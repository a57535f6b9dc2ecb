package envconfig

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/envconfig/streams"
)

type initCfg struct {
	Host     string
	Port     uint16 `default:"5432"`
	Token    *string
	Internal string    `env:"-"`
	Replica  *dbConfig `prefix:"REPLICA_"`
}

func TestInit(t *testing.T) {
	token := "old-token"
	original := &dbConfig{Host: "old-replica", Port: 1}
	cfg := initCfg{Host: "old", Token: &token, Internal: "keep", Replica: original}

	err := Init(&cfg, WithMap(map[string]string{"HOST": "new", "REPLICA_HOST": "r"}))
	require.NoError(t, err)
	require.Equal(t, "new", cfg.Host)
	require.Equal(t, uint16(5432), cfg.Port)
	require.Nil(t, cfg.Token, "absent optional key clears the field")
	require.Equal(t, "keep", cfg.Internal)
	require.Equal(t, &dbConfig{Host: "r", Port: 5432}, cfg.Replica)

	// The previous pointee is replaced, not written through.
	require.Equal(t, &dbConfig{Host: "old-replica", Port: 1}, original)
}

func TestInit_ErrorLeavesDestinationUntouched(t *testing.T) {
	cfg := initCfg{Host: "old", Port: 1, Internal: "keep"}
	before := cfg

	// HOST and PORT resolve, REPLICA_HOST is missing.
	err := Init(&cfg, WithMap(map[string]string{"HOST": "new", "PORT": "2"}))
	require.Equal(t, &MissingError{Key: "REPLICA_HOST"}, err)
	require.Equal(t, before, cfg)
}

func TestInit_PanicsOnBadDestination(t *testing.T) {
	require.Panics(t, func() { _ = Init(nil) })
	require.Panics(t, func() { _ = Init(initCfg{}) })
	require.Panics(t, func() { _ = Init((*initCfg)(nil)) })
}

func TestLoad_ErrorReturnsZero(t *testing.T) {
	cfg, err := Load[dbConfig](WithMap(map[string]string{"HOST": "h", "PORT": "x"}))
	require.Error(t, err)
	require.Equal(t, dbConfig{}, cfg)
}

func TestLoad_DefaultsToEnvironment(t *testing.T) {
	t.Setenv("HOST", "from-env")
	t.Setenv("PORT", "1234")

	cfg, err := Load[dbConfig]()
	require.NoError(t, err)
	require.Equal(t, dbConfig{Host: "from-env", Port: 1234}, cfg)

	// An explicit source replaces the environment entirely.
	cfg, err = Load[dbConfig](WithMap(map[string]string{"HOST": "from-map"}))
	require.NoError(t, err)
	require.Equal(t, dbConfig{Host: "from-map", Port: 5432}, cfg)
}

func TestOptions_Panics(t *testing.T) {
	require.NotPanics(t, func() { WithSource(nil) })
	require.NotPanics(t, func() { WithPrefix("") })

	require.PanicsWithValue(t, "envconfig: WithSource: src cannot be nil", func() {
		buildOptions([]Option{WithSource(nil)})
	})
	require.PanicsWithValue(t, "envconfig: WithPrefix: prefix cannot be empty", func() {
		_, _ = Load[dbConfig](WithMap(nil), WithPrefix(""))
	})
}

func TestOptions_LastWins(t *testing.T) {
	o := buildOptions([]Option{
		WithMap(map[string]string{"A": "1"}),
		WithPrefix("X_"),
		WithMap(map[string]string{"A": "2"}),
		WithPrefix("Y_"),
	})
	v, ok := o.source.Lookup("A")
	require.True(t, ok)
	require.Equal(t, "2", v)
	require.Equal(t, "Y_", o.prefix)
}

func TestWithStreams_Diagnostics(t *testing.T) {
	buf := streams.NewBuffers()
	_, err := Load[prefixedConfig](
		WithMap(map[string]string{"DB_HOST": "h", "DB_PORT": "1", "CACHE_HOST": "c"}),
		WithStreams(buf),
	)
	require.NoError(t, err)

	out, errOut := buf.Strings()
	require.Equal(t, "envconfig: CACHE_PORT not set, using default \"6379\"\n", out)
	require.Empty(t, errOut)
}

func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	old := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = old })
	return &code
}

func TestMustLoad(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		code := stubExit(t)
		cfg := MustLoad[dbConfig](WithMap(map[string]string{"HOST": "h"}))
		require.Equal(t, dbConfig{Host: "h", Port: 5432}, cfg)
		require.Equal(t, -1, *code)
	})

	t.Run("failure exits with status 1", func(t *testing.T) {
		code := stubExit(t)
		buf := streams.NewBuffers()
		cfg := MustLoad[dbConfig](WithMap(nil), WithStreams(buf))
		require.Equal(t, 1, *code)
		require.Equal(t, dbConfig{}, cfg)

		_, errOut := buf.Strings()
		require.Equal(t, "env variable is missing: HOST\n", errOut)
	})

	t.Run("nil error stream still exits", func(t *testing.T) {
		code := stubExit(t)
		MustLoad[dbConfig](WithMap(nil), WithStreams(streams.New(nil, nil)))
		require.Equal(t, 1, *code)
	})
}

func TestProvider_GetOnce(t *testing.T) {
	var lookups atomic.Int32
	src := countingSource{Source: Map(map[string]string{"HOST": "h"}), n: &lookups}

	p := New[dbConfig](WithSource(src))

	var wg sync.WaitGroup
	results := make([]*dbConfig, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.Get()
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		require.NoError(t, errs[i])
		require.Same(t, results[0], r)
	}
	require.Equal(t, &dbConfig{Host: "h", Port: 5432}, results[0])
	require.Equal(t, int32(2), lookups.Load(), "HOST and PORT are looked up exactly once")
}

func TestProvider_CachesError(t *testing.T) {
	src := map[string]string{}
	p := New[dbConfig](WithMap(src))

	cfg, err := p.Get()
	require.Nil(t, cfg)
	require.Equal(t, &MissingError{Key: "HOST"}, err)

	src["HOST"] = "late"
	cfg, err2 := p.Get()
	require.Nil(t, cfg)
	require.Same(t, err, err2)
}

type countingSource struct {
	Source
	n *atomic.Int32
}

func (c countingSource) Lookup(key string) (string, bool) {
	c.n.Add(1)
	return c.Source.Lookup(key)
}
