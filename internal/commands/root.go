package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/taskr"
)

// NewRoot builds the taskr command tree with its global flags bound to flags.
// app is populated by the caller's Before hook; commands only dereference it
// while running. The interactive view is the default action.
func NewRoot(flags *Flags, app *taskr.App) *cli.Command {
	root := &cli.Command{
		Name:      "taskr",
		Usage:     "Keep a short list of tasks",
		UsageText: "taskr [global options] command [command options]",
		Description: `Taskr manages a flat list of short text tasks that can be added, edited,
completed, filtered and deleted. The list is saved after every change.

Run 'taskr' with no arguments to open the interactive view.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKR_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskr.log)",
				Sources:     cli.EnvVars("TASKR_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKR_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKR_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "ephemeral",
				Usage:       "keep tasks in memory only for this run",
				Destination: &flags.Ephemeral,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = tuiCmd.Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewLsCmd(flags, app).Register(root)
	root = NewToggleCmd(flags, app).Register(root)
	root = NewEditCmd(flags, app).Register(root)
	root = NewRmCmd(flags, app).Register(root)
	root = NewExportCmd(flags, app).Register(root)
	root = NewImportCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskr --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}

// NeedsApp reports whether the invocation opens storage. Config commands
// load the configuration themselves so they can report invalid files.
func NeedsApp(c *cli.Command) bool {
	return c.Args().First() != "config"
}
