// Package backend builds the storage.Driver selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vdk888/knowledge/pkg/config"
	"github.com/vdk888/knowledge/pkg/storage"
	"github.com/vdk888/knowledge/pkg/storage/fallback"
	"github.com/vdk888/knowledge/pkg/storage/inmemory"
	"github.com/vdk888/knowledge/pkg/storage/postgres"
	"github.com/vdk888/knowledge/pkg/storage/sqlite"
)

// Kind is the durable backend named by a database URL.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// Parse returns the backend kind of databaseURL and the connection string to
// hand to its driver.
func Parse(databaseURL string) (Kind, string, error) {
	switch {
	case databaseURL == "":
		return KindMemory, "", nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return KindPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return KindSQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "file:"):
		return KindSQLite, databaseURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme: %q", redact(databaseURL))
	}
}

// New opens the durable store named by cfg.DatabaseURL and wraps it with the
// in-memory fallback. Without a URL the bare in-memory driver is returned.
// When the URL is malformed or the durable store cannot be opened the failure
// is logged and every call is served by the in-memory driver for the life of
// the process.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storage.Driver, error) {
	memory := inmemory.NewDriver()

	kind, conn, parseErr := Parse(cfg.DatabaseURL)
	if parseErr == nil && kind == KindMemory {
		logger.Info("using in-memory storage")
		return memory, nil
	}

	breaker, err := breakerConfig(cfg.Breaker)
	if err != nil {
		return nil, err
	}

	var durable storage.Driver
	if err = parseErr; err == nil {
		durable, err = open(ctx, kind, conn)
	}

	if err != nil {
		logger.Error("durable storage unavailable, serving from in-memory store",
			"backend", string(kind),
			"error", fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err),
		)
	} else {
		logger.Info("using durable storage", "backend", string(kind))
	}

	return fallback.NewDriver(fallback.Config{
		Durable:  durable,
		Fallback: memory,
		Breaker:  breaker,
		Logger:   logger,
	})
}

// Open opens the durable store named by databaseURL without a fallback, for
// callers that must know their writes reached it.
func Open(ctx context.Context, databaseURL string) (storage.Driver, error) {
	kind, conn, err := Parse(databaseURL)
	if err != nil {
		return nil, err
	}
	if kind == KindMemory {
		return nil, errors.New("a durable database url is required")
	}
	return open(ctx, kind, conn)
}

// open returns a nil storage.Driver (not a typed nil) on failure.
func open(ctx context.Context, kind Kind, conn string) (storage.Driver, error) {
	switch kind {
	case KindPostgres:
		d, err := postgres.NewDriver(ctx, conn)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		return d, nil
	case KindSQLite:
		d, err := sqlite.NewDriver(ctx, conn)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("no durable driver for %s", kind)
	}
}

func breakerConfig(c config.BreakerConfig) (*fallback.BreakerConfig, error) {
	if !c.Enabled {
		return nil, nil
	}

	timeout, err := c.Timeout()
	if err != nil {
		return nil, err
	}

	return &fallback.BreakerConfig{
		ConsecutiveFailures: c.ConsecutiveFailures,
		OpenTimeout:         timeout,
	}, nil
}

// redact hides credentials in a URL-shaped string.
func redact(databaseURL string) string {
	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return databaseURL
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***" + rest[at:]
	}
	return scheme + "://" + rest
}
