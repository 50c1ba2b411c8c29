package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/goals"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/reminders"
	"github.com/julianstephens/habitual/internal/cli/reports"
	"github.com/julianstephens/habitual/internal/cli/settings"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
)

type CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" placeholder:"PATH"`
	DB       string `name:"db" help:"Store location: a .db (SQLite) or .json file, or a PostgreSQL connection string without a password. Overrides the config file and HABITUAL_DB."`
	DebugLog bool   `name:"debug" help:"Enable debug logging to stderr."`
	TZ       string `name:"tz" help:"IANA timezone to use for this run instead of the stored setting."`

	Init     system.InitCmd        `cmd:"" help:"Initialize habitual storage."`
	Tui      system.TuiCmd         `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit    habits.HabitCmd       `cmd:"" help:"Manage habits and record completions."`
	Heatmap  reports.HeatmapCmd    `cmd:"" help:"Show a completion heatmap."`
	Stats    reports.StatsCmd      `cmd:"" help:"Show statistics."`
	Goal     goals.GoalCmd         `cmd:"" help:"Manage goals."`
	Reminder reminders.ReminderCmd `cmd:"" help:"Manage reminders."`
	Export   reports.ExportCmd     `cmd:"" help:"Export habits as JSON, CSV or YAML."`
	Settings settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for integrity problems."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug    cli.DebugCmd       `cmd:"" help:"Debug commands for troubleshooting."`
}

// unstartedCommands manage the store themselves and must not trigger the
// daily rollover.
var unstartedCommands = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		apperrors.Fatal(err)
	}
}

func execute(args []string, out io.Writer) error {
	var flags CLI
	parser, err := kong.New(&flags,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, heatmaps, goals and statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
		kong.Writers(out, os.Stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		ConfigDir: config.ConfigDir(),
		LogDir:    cfg.LogDir(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	ctx := cli.New(store, cfg)
	ctx.Out = out
	err = run(kctx, ctx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("failed to close store", "error", closeErr)
	}
	return err
}

// loadConfig layers the config file, .env and HABITUAL_* variables, then
// command-line flags.
func loadConfig(flags CLI) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if flags.DB != "" {
		cfg.Storage.Path = flags.DB
	}
	if flags.DebugLog {
		cfg.Log.Debug = true
	}
	if flags.TZ != "" {
		cfg.General.Timezone = flags.TZ
	}
	return cfg, nil
}

// openStore uses the configured location, then a connection string saved in
// the OS keyring, then the default SQLite file.
func openStore(cfg config.Config) (storage.Provider, error) {
	if cfg.Storage.Path != "" {
		store, err := cli.NewStore(cfg.Storage.Path)
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("%w. Use .pgpass, PGPASSWORD or 'habitual keyring set' instead", err)
		}
		return store, err
	}

	if connStr, err := keyring.GetConnectionString(); err == nil {
		logger.Debug("using connection string from OS keyring")
		return postgres.New(connStr), nil
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("keyring lookup failed", "error", err)
	}
	return cli.NewStore(cfg.DBPath())
}

func run(kctx *kong.Context, ctx *cli.Context) error {
	command := strings.Fields(kctx.Command())
	if len(command) == 0 || !unstartedCommands[command[0]] {
		if err := ctx.Store.Load(); err != nil {
			if errors.Is(err, storage.ErrNotInitialized) {
				return fmt.Errorf("%w: run 'habitual init' first", err)
			}
			return err
		}
		if _, err := ctx.Start(); err != nil {
			return err
		}
	}
	return kctx.Run(ctx)
}
