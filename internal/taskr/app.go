// Package taskr wires configuration, storage and the task store together.
package taskr

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskr/internal/core/config"
	"github.com/colonyops/taskr/internal/core/kv"
	"github.com/colonyops/taskr/internal/core/logging"
	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/colonyops/taskr/internal/core/task"
	"github.com/colonyops/taskr/internal/data/db"
	"github.com/colonyops/taskr/internal/data/stores"
	"github.com/colonyops/taskr/internal/store/jsonfile"
)

// App is the central entry point for all taskr operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *task.Store
	Bus    *notify.Bus
	Config *config.Config

	log     zerolog.Logger
	closers []func() error
}

// Option configures App construction.
type Option func(*options)

type options struct {
	storeOpts []task.Option
}

// WithStoreOptions passes options through to the task store.
func WithStoreOptions(opts ...task.Option) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

// Open builds an App from cfg, opening the configured storage backend.
// The task list is not read until Load is called, so subscribers can be
// attached to Bus first.
func Open(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{
		Bus:    notify.NewBus(),
		Config: cfg,
		log:    logging.Component("app"),
	}

	slot, err := app.openSlot(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	busLog := logging.Component("bus")
	app.Bus.Subscribe(func(n notify.Notification) {
		busLog.Debug().
			Uint64("id", n.ID).
			Str("kind", string(n.Kind)).
			Str("message", n.Message).
			Msg("notification")
	})

	app.Tasks = task.New(slot, app.Bus, o.storeOpts...)
	return app, nil
}

// Load reads the saved task list. A corrupt or unreadable slot has already
// been reported through the bus and the list starts empty, so it is logged
// and not returned.
func (a *App) Load(ctx context.Context) error {
	err := a.Tasks.Load(ctx)

	var perr *task.PersistenceError
	if errors.As(err, &perr) {
		a.log.Warn().Err(err).Msg("starting with an empty task list")
		return nil
	}
	return err
}

// Close releases storage resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openSlot(cfg *config.Config) (task.Slot, error) {
	a.log.Debug().Str("backend", cfg.Storage.Backend).Str("data_dir", cfg.DataDir).Msg("opening storage")

	if cfg.Storage.Backend != config.BackendMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		return jsonfile.NewSlot(cfg.TasksFile()), nil

	case config.BackendSQLite:
		database, err := a.openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		return kv.NewSlot(stores.NewKVStore(database), cfg.Storage.Key), nil

	case config.BackendBadger:
		store, err := stores.OpenBadger(stores.BadgerOptions{Dir: cfg.BadgerDir()})
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return kv.NewSlot(store, cfg.Storage.Key), nil

	case config.BackendMemory:
		return kv.NewSlot(stores.NewMemoryStore(), cfg.Storage.Key), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openDatabase opens the sqlite database, moving a corrupted file aside and
// starting fresh once if needed.
func (a *App) openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("recover corrupted database: %w", rerr)
	}
	a.log.Warn().Err(err).Str("backup", backup).Msg("database was corrupted, moved aside")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database after recovery: %w", err)
	}
	return database, nil
}
