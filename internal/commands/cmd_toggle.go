package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/iojson"
)

type ToggleCmd struct {
	flags *Flags
	app   *taskr.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *taskr.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Usage:     "Flip a task between active and completed",
		UsageText: "taskr toggle <id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	t, err := cmd.app.Tasks.ToggleTask(ctx, id)
	if err != nil {
		return errRejected
	}

	if err := checkSaved(cmd.app); err != nil {
		return err
	}
	return iojson.WriteLine(c.Root().Writer, t)
}
