package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/storage"
)

type DebugCmd struct {
	DBPath    DebugDBPathCmd    `cmd:"" help:"Show database path."`
	Keys      DebugKeysCmd      `cmd:"" help:"List stored record keys."`
	DumpKey   DebugDumpKeyCmd   `cmd:"" help:"Dump a stored record as JSON."`
	DumpHabit DebugDumpHabitCmd `cmd:"" help:"Dump habit data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.Println(k)
	}
	return nil
}

type DebugDumpKeyCmd struct {
	Key string `arg:"" help:"Record key, e.g. habits or settings."`
}

func (cmd *DebugDumpKeyCmd) Run(ctx *Context) error {
	raw, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no record stored under key: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read key %s: %w", cmd.Key, err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not JSON; print as stored
		ctx.Println(string(raw))
		return nil
	}
	return ctx.printJSON(v)
}

type DebugDumpHabitCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	h, ok, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil || !ok {
		return err
	}
	return ctx.printJSON(h)
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.Println(string(jsonBytes))
	return nil
}
