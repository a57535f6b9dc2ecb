package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ygrebnov/envconfig"
	"github.com/ygrebnov/envconfig/streams"
)

var (
	helpFlag     = getopt.BoolLong("help", 'h', "print this help message")
	describeFlag = getopt.BoolLong("describe", 'd', "print the environment variables read and exit")
	verboseFlag  = getopt.BoolLong("verbose", 'v', "log every default applied while loading")
	formatOpt    = getopt.EnumLong("format", 'f', []string{"yaml", "json"}, "yaml", "output format for --describe", "{yaml|json}")

	// these are changed in tests
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	getopt.HelpColumn = 30
	getopt.Parse()

	if *helpFlag {
		getopt.Usage()
		return
	}

	if err := run(envconfig.Env(), *describeFlag, envconfig.Format(*formatOpt), *verboseFlag); err != nil {
		fmt.Fprintln(stderr, err)
		os.Exit(1)
	}
}

func run(src envconfig.Source, describe bool, format envconfig.Format, verbose bool) error {
	if describe {
		s, err := envconfig.SchemaFor[Config]()
		if err != nil {
			return errors.Wrap(err, "failed to build schema")
		}
		return errors.Wrap(envconfig.WriteReference(stdout, envconfig.Describe(s, ""), format), "failed to write reference")
	}

	logger := zerolog.New(stderr).With().Timestamp().Logger()

	opts := []envconfig.Option{envconfig.WithSource(src)}
	if verbose {
		diag := logger.With().Str("component", "envconfig").Logger()
		opts = append(opts, envconfig.WithStreams(streams.New(diag, nil)))
	}

	cfg, err := envconfig.Load[Config](opts...)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	logger = logger.Level(cfg.LogLevel)
	logger.Info().
		Str("server_host", cfg.Server.Host).
		Uint16("server_port", cfg.Server.Port).
		Dur("read_timeout", cfg.Server.ReadTimeout).
		Str("db_host", cfg.Database.Host).
		Uint16("db_port", cfg.Database.Port).
		Str("db_name", cfg.Database.Name).
		Bool("db_password_set", cfg.Database.Password != nil).
		Str("replica_host", cfg.Replica.Host).
		Str("cache_host", cfg.Cache.Host).
		Dur("cache_ttl", cfg.Cache.TTL).
		Bool("debug", cfg.Debug != nil && *cfg.Debug).
		Msg("configuration loaded")
	return nil
}
