package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/core/task"
	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *taskr.App

	// flags
	filter string
	stats  bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskr.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "taskr ls [--filter all|active|completed] [--stats]",
		Description: `Prints the tasks matching the filter as JSON lines, in insertion order.

Use --stats to print the total, completed and active counts to stderr.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "which tasks to show (all, active, completed)",
				Value:       string(task.FilterAll),
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "print task counts to stderr",
				Destination: &cmd.stats,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := task.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}

	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	store := cmd.app.Tasks
	if filter != store.Filter() {
		if err := store.SetFilter(ctx, filter); err != nil {
			return err
		}
	}

	out := c.Root().Writer
	for _, t := range store.FilteredView() {
		if err := iojson.WriteLine(out, t); err != nil {
			return fmt.Errorf("encode task: %w", err)
		}
	}

	if cmd.stats {
		counts := store.Counts()
		_, _ = fmt.Fprintf(c.Root().ErrWriter, "%d total tasks • %d completed • %d active\n",
			counts.Total, counts.Completed, counts.Active)
	}

	return checkSaved(cmd.app)
}
