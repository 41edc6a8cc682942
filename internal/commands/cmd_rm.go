package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/taskr/internal/core/task"
	"github.com/colonyops/taskr/internal/taskr"
)

// ErrConfirmationRequired is returned when rm cannot prompt and --yes was not given.
var ErrConfirmationRequired = errors.New("stdin is not a terminal; pass --yes to delete without confirmation")

type RmCmd struct {
	flags *Flags
	app   *taskr.App

	// flags
	yes bool

	interactive func() bool
	confirm     func(task.PendingDelete) (bool, error)
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskr.App) *RmCmd {
	return &RmCmd{
		flags:       flags,
		app:         app,
		interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		confirm:     confirmDelete,
	}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		UsageText: "taskr rm <id> [--yes]",
		Description: `Deletes a task after asking for confirmation.

Without a terminal on stdin the prompt cannot be shown and --yes is required.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "delete without asking",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if !cmd.yes && !cmd.interactive() {
		return ErrConfirmationRequired
	}

	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	store := cmd.app.Tasks
	if err := store.RequestDelete(ctx, id); err != nil {
		return errRejected
	}

	if !cmd.yes {
		pending, _ := store.PendingDelete()
		ok, err := cmd.confirm(pending)
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			store.CancelDelete(ctx)
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			store.CancelDelete(ctx)
			return nil
		}
	}

	if err := store.ConfirmDelete(ctx); err != nil {
		return err
	}
	return checkSaved(cmd.app)
}

func confirmDelete(pending task.PendingDelete) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Delete Task").
		Description(fmt.Sprintf("Are you sure you want to delete %q?\nThis action cannot be undone.", pending.Text)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}
