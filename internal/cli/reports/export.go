package reports

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/export"
	"github.com/julianstephens/habitual/internal/logger"
)

type ExportCmd struct {
	Format string `arg:"" help:"Export format (csv, json, yaml)."`
	Output string `short:"o" help:"Output file. Use - for stdout. Default: habits-export-YYYY-MM-DD.<format> in the current directory."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}
	now := ctx.Tracker.Now()

	if c.Output == "-" {
		return export.Write(ctx.Out, format, habits, now)
	}

	path := c.Output
	if path == "" {
		path = export.FileName(format, now)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, format, habits, now); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.Info("habits exported", "format", format, "path", path, "habits", len(habits))
	ctx.Printf("✓ Exported %d habits to %s\n", len(habits), path)
	return nil
}
