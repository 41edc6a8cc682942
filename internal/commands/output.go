package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/colonyops/taskr/internal/core/styles"
	"github.com/colonyops/taskr/internal/taskr"
)

// errRejected exits non-zero after the store already reported why.
var errRejected = cli.Exit("", 1)

// printNotifications writes every non-info notification to w with its icon.
// Info notifications only reach the log.
func printNotifications(bus *notify.Bus, w io.Writer) {
	bus.Subscribe(func(n notify.Notification) {
		if n.Kind == notify.KindInfo {
			return
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.NotificationIcon(n.Kind), n.Message)
	})
}

// loadTasks attaches the stderr printer and reads the saved list.
func loadTasks(ctx context.Context, app *taskr.App, c *cli.Command) error {
	printNotifications(app.Bus, c.Root().ErrWriter)
	return app.Load(ctx)
}

// checkSaved turns a recorded persist failure into a command error.
func checkSaved(app *taskr.App) error {
	if err := app.Tasks.PersistErr(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func parseID(c *cli.Command) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("task id is required")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
