// Package persistence provides the durable key-value medium that mirrors the
// hospital store. Each entity collection is kept under its own key as one
// serialized blob; backends range from an in-process map (tests, ephemeral
// runs) to files, embedded databases and remote services.
package persistence

import (
	"context"
	"errors"
	"fmt"
)

// ErrAbsent is returned by Load when nothing was ever stored under a key.
var ErrAbsent = errors.New("persistence: key absent")

// Medium is the durable storage port. Implementations overwrite the whole
// blob on Save; there is no partial update and no versioning.
type Medium interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Supported driver names.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverBadger   = "badger"
	DriverS3       = "s3"
)

// Drivers lists every driver Open understands.
var Drivers = []string{
	DriverMemory, DriverFile, DriverSQLite, DriverPostgres,
	DriverRedis, DriverBadger, DriverS3,
}

// Config selects and parameterizes a backend.
type Config struct {
	Driver      string
	Path        string // file directory, sqlite database file or badger directory
	DatabaseURL string
	RedisAddr   string
	RedisPrefix string
	S3          S3Config
}

// Open constructs the Medium named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Medium, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(cfg.Path)
	case DriverSQLite:
		return NewSQLite(cfg.Path)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.DatabaseURL)
	case DriverRedis:
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case DriverBadger:
		return NewBadger(cfg.Path)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("persistence: unknown driver %q", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("persistence: empty key")
	}
	return nil
}
