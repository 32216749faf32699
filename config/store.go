package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ponto.app/ponto/store"
)

// OpenStore builds the configured store. The returned close function
// flushes pending writes and releases the database pool.
func (c *Config) OpenStore(ctx context.Context, logger *slog.Logger) (store.Store, func(context.Context) error, error) {
	nop := func(context.Context) error { return nil }

	var (
		inner   store.Store
		release = nop
	)

	switch c.Store.Driver {
	case DriverMemory:
		return store.NewMemory(), nop, nil
	case DriverFile:
		fs, err := store.NewFileStore(c.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		inner = fs
	case DriverMySQL:
		gs, dm, err := c.OpenGormStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		inner = gs
		release = func(context.Context) error { return dm.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Store.Debounce <= 0 {
		return inner, release, nil
	}

	d := store.NewDebounced(inner, c.Store.Debounce, logger)
	closeFn := func(ctx context.Context) error {
		return errors.Join(d.Close(ctx), release(ctx))
	}
	return d, closeFn, nil
}

// OpenGormStore connects to MySQL and makes sure the schema exists.
func (c *Config) OpenGormStore(ctx context.Context) (*store.GormStore, *store.DatabaseManager, error) {
	loc, err := c.TimeLocation()
	if err != nil {
		return nil, nil, err
	}

	dm, err := store.NewDatabaseManager(c.Store.DSN, c.Store.MaxConnections)
	if err != nil {
		return nil, nil, err
	}
	dm.LogLevel = store.ParseLogLevel(c.Store.LogLevel)

	gs := store.NewGormStore(dm, loc)
	if err := gs.Migrate(ctx); err != nil {
		dm.Close()
		return nil, nil, err
	}
	return gs, dm, nil
}
