package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/rollover"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Repo     *storage.Repository
	Tracker  *tracker.Service
	Config   config.Config
	Settings models.Settings

	// Clock overrides the wall clock; nil means time.Now.
	Clock func() time.Time
	Out   io.Writer
	In    io.Reader
}

// New wires a context around store. Display defaults from cfg apply until
// the user stores explicit settings.
func New(store storage.Provider, cfg config.Config) *Context {
	defaults := models.Settings{
		HeatmapWindow: cfg.Display.HeatmapWindow,
		TrendWeeks:    cfg.Display.TrendWeeks,
	}
	return &Context{
		Store:  store,
		Repo:   storage.NewRepository(store).WithSettingsDefaults(defaults),
		Config: cfg,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// Open resolves settings and the timezone and builds the tracker. The store
// must already be loaded.
func (c *Context) Open() error {
	settings, err := c.Repo.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	c.Settings = settings

	tz := settings.Timezone
	if c.Config.General.Timezone != "" {
		tz = c.Config.General.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	c.Tracker = tracker.New(c.Repo, loc)
	if c.Clock != nil {
		c.Tracker.WithClock(c.Clock)
	}
	return nil
}

// Start opens the context and runs the daily rollover. A rollover into a new
// day is followed by an automatic backup.
func (c *Context) Start() (rollover.Report, error) {
	if err := c.Open(); err != nil {
		return rollover.Report{}, err
	}
	report, err := c.Tracker.Rollover()
	if err != nil {
		return report, fmt.Errorf("daily rollover failed: %w", err)
	}
	if report.Performed && report.Previous != "" {
		c.PerformAutomaticBackup()
	}
	return report, nil
}

// BackupManager returns the backup manager for file-backed stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*postgres.Store); ok {
		return nil, backup.ErrUnsupportedStore
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if c.Clock != nil {
		mgr.WithClock(c.Clock)
	}
	return mgr, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("automatic backup skipped", "reason", err)
		return
	}
	if _, err := os.Stat(c.Store.GetConfigPath()); err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit looks ref up as an id or name, printing a not-found message
// when it does not resolve.
func (c *Context) ResolveHabit(ref string) (models.Habit, bool, error) {
	h, ok, err := c.Tracker.FindHabit(ref)
	if err != nil {
		return models.Habit{}, false, err
	}
	if !ok {
		c.Println(errors.NotFound("habit", ref))
	}
	return h, ok, nil
}

// ResolveGoal is ResolveHabit for goals. Short ids as printed by
// `goal list` are accepted.
func (c *Context) ResolveGoal(ref string) (models.Goal, bool, error) {
	g, ok, err := c.Tracker.FindGoal(ref)
	if err != nil || ok {
		return g, ok, err
	}
	statuses, err := c.Tracker.Goals()
	if err != nil {
		return models.Goal{}, false, err
	}
	ids := make([]string, len(statuses))
	for i, st := range statuses {
		ids[i] = st.Goal.ID
	}
	if i := MatchID(ids, ref); i >= 0 {
		return statuses[i].Goal, true, nil
	}
	c.Println(errors.NotFound("goal", ref))
	return models.Goal{}, false, nil
}

// MatchID returns the index of the id equal to ref or, failing that, the
// single id starting with ref. Prefixes shorter than four characters never
// match.
func MatchID(ids []string, ref string) int {
	ref = strings.TrimSpace(ref)
	for i, id := range ids {
		if id == ref {
			return i
		}
	}
	if len(ref) < 4 {
		return -1
	}
	match := -1
	for i, id := range ids {
		if strings.HasPrefix(id, ref) {
			if match >= 0 {
				return -1
			}
			match = i
		}
	}
	return match
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// NewStore picks the backend for path: a PostgreSQL connection string, a
// ".json" file or, otherwise, an SQLite database.
func NewStore(path string) (storage.Provider, error) {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return nil, fmt.Errorf("no store path configured")
	case postgres.IsConnString(path) || strings.Contains(path, "host="):
		if err := postgres.ValidateConnString(path); err != nil {
			return nil, err
		}
		return postgres.New(path), nil
	case strings.EqualFold(filepath.Ext(path), ".json"):
		return storage.NewJSONStore(config.ExpandPath(path)), nil
	default:
		return sqlite.NewStore(config.ExpandPath(path)), nil
	}
}
