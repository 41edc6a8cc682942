package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *taskr.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskr.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskr add <text...>",
		Description: `Adds a new active task and prints it as JSON.

The text is trimmed, must not be empty, may be at most 200 characters and
must not match an existing task (ignoring case).`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	t, err := cmd.app.Tasks.AddTask(ctx, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return errRejected
	}

	if err := checkSaved(cmd.app); err != nil {
		return err
	}
	return iojson.WriteLine(c.Root().Writer, t)
}
