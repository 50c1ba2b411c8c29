package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/procs"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

// errWarning marks a check result that is reported but does not fail doctor.
var errWarning = errors.New("warning")

type check struct {
	name    string
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{"Database reachable", false, checkDBReachable},
	{"Schema version", true, checkSchemaVersion},
	{"Migrations complete", true, checkMigrationsComplete},
	{"Backups present", false, checkBackupsPresent},
	{"Data integrity", true, checkIntegrity},
	{"Clock/timezone", true, checkClockTimezone},
	{"Single writer", false, checkOtherProcesses},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %s\n", strings.TrimSuffix(err.Error(), ": "+errWarning.Error()))
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
		if c.name == "Database reachable" {
			dbReachable = err == nil
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func warnf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errWarning)...)
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	if ctx.Tracker == nil {
		return ctx.Open()
	}
	return nil
}

// schemaStatus returns false for stores without a schema.
func schemaStatus(ctx *cli.Context) (migration.Status, bool, error) {
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		st, err := s.SchemaStatus()
		return st, true, err
	case *postgres.Store:
		st, err := s.SchemaStatus()
		return st, true, err
	}
	return migration.Status{}, false, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, ok, err := schemaStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if ok && st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, ok, err := schemaStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if ok && st.Pending > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, backup.ErrUnsupportedStore) {
		return warnf("backups are not managed for PostgreSQL; use pg_dump")
	}
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found - consider creating one with 'habitual backup create'")
	}
	return nil
}

// checkIntegrity fails on real data problems. Stale caches are expected after
// a missed day, since the rollover keeps streaks as they were, so they only
// warn.
func checkIntegrity(ctx *cli.Context) error {
	result, _, err := ctx.Tracker.Check(false)
	if err != nil {
		return fmt.Errorf("failed to check data: %w", err)
	}

	var problems, stale []string
	for _, c := range result.Conflicts {
		if c.Type == validation.ConflictStaleCache {
			stale = append(stale, c.Description)
			continue
		}
		problems = append(problems, c.Description)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s): %s (run 'habitual validate --fix')", len(problems), strings.Join(problems, "; "))
	}
	if len(stale) > 0 {
		return warnf("%d habit(s) have stale cached totals - 'habitual validate --fix' recomputes them", len(stale))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Settings.Timezone) {
		return fmt.Errorf("stored timezone %q is not a valid IANA name", ctx.Settings.Timezone)
	}
	return nil
}

func checkOtherProcesses(ctx *cli.Context) error {
	others, err := procs.Others()
	if err != nil {
		return warnf("could not list processes: %v", err)
	}
	if len(others) > 0 {
		pids := make([]string, len(others))
		for i, p := range others {
			pids[i] = fmt.Sprint(p.PID)
		}
		return warnf("%d other habitual process(es) running (PID %s); concurrent writes overwrite each other",
			len(others), strings.Join(pids, ", "))
	}
	return nil
}
