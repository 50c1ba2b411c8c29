package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if c.Force {
		if err := clearPostgres(ctx.Store); err != nil {
			return err
		}
	}
	ctx.Printf("Initialized habitual storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Migration completed successfully! (%d records)\n", n)
	}
	return nil
}

// reset backs up and deletes a file store.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return nil
	}
	dbPath := ctx.Store.GetConfigPath()
	// Don't delete if it's the source (user error protection)
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		ctx.PerformAutomaticBackup()
		// Close first to prevent file locking issues
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		logger.Info("store deleted for re-initialization", "path", dbPath)
		ctx.Printf("Deleted existing store at: %s\n", dbPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

// clearPostgres removes every record from a PostgreSQL store, which cannot
// be reset by deleting a file.
func clearPostgres(store storage.Provider) error {
	if _, ok := store.(*postgres.Store); !ok {
		return nil
	}
	keys, err := store.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := store.Delete(k); err != nil {
			return fmt.Errorf("failed to delete %s: %w", k, err)
		}
	}
	return nil
}

// migrateData copies every record from the source store.
func (c *InitCmd) migrateData(ctx *cli.Context) (int, error) {
	source, err := cli.NewStore(c.Source)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return 0, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use .pgpass or the OS keyring instead")
		}
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	keys, err := source.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source records: %w", err)
	}
	for _, k := range keys {
		value, err := source.Get(k)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", k, err)
		}
		if err := ctx.Store.Put(k, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", k, err)
		}
		ctx.Printf("  Migrated %s\n", k)
	}
	return len(keys), nil
}
