package main

import (
	"time"

	"github.com/rs/zerolog"
)

// Config is the configuration of a typical HTTP service backed by a database
// and a cache. Every key is read with the ENVCHECK_ prefix.
type Config struct {
	Server   ServerConfig `prefix:"SERVER_"`
	Database DBConfig     `prefix:"DB_"`
	Replica  *DBConfig    `prefix:"REPLICA_"`
	Cache    CacheConfig  `prefix:"CACHE_"`

	LogLevel zerolog.Level `env:"LOG_LEVEL" default:"info"`
	Debug    *bool
}

func (Config) EnvPrefix() string { return "ENVCHECK_" }

type ServerConfig struct {
	Host        string        `default:"0.0.0.0"`
	Port        uint16        `default:"8080"`
	ReadTimeout time.Duration `default:"15s"`
}

type DBConfig struct {
	Host     string
	Port     uint16 `default:"5432"`
	Name     string
	User     string `default:"postgres"`
	Password *string
}

type CacheConfig struct {
	Host string
	Port uint16        `default:"6379"`
	TTL  time.Duration `default:"5m"`
}
