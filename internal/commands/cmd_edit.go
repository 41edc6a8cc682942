package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/iojson"
)

type EditCmd struct {
	flags *Flags
	app   *taskr.App
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *taskr.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "edit",
		Usage:       "Replace the text of a task",
		UsageText:   "taskr edit <id> <text...>",
		Description: "The new text follows the same rules as add; a task may keep its own text.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	store := cmd.app.Tasks
	if err := store.StartEdit(ctx, id); err != nil {
		return errRejected
	}

	t, err := store.SaveEdit(ctx, id, strings.Join(c.Args().Tail(), " "))
	if err != nil {
		return errRejected
	}

	if err := checkSaved(cmd.app); err != nil {
		return err
	}
	return iojson.WriteLine(c.Root().Writer, t)
}
