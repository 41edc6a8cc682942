package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/taskr/internal/core/styles"
	"github.com/colonyops/taskr/internal/core/task"
	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/iojson"
)

const (
	formatJSON     = "json"
	formatMarkdown = "md"

	markdownWrap = 80
)

type ExportCmd struct {
	flags *Flags
	app   *taskr.App

	// flags
	format string

	stdoutIsTerminal func() bool
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *taskr.App) *ExportCmd {
	return &ExportCmd{
		flags:            flags,
		app:              app,
		stdoutIsTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Print every task as JSON or a Markdown checklist",
		UsageText: "taskr export [--format json|md]",
		Description: `Writes the whole list, ignoring filters.

The json format matches the saved layout and can be read back with import.
The md format is rendered for the terminal when stdout is a TTY and printed
as plain Markdown otherwise.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, md)",
				Value:       formatJSON,
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != formatJSON && cmd.format != formatMarkdown {
		return fmt.Errorf("unknown format %q (want json or md)", cmd.format)
	}

	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	tasks := cmd.app.Tasks.Tasks()
	out := c.Root().Writer

	if cmd.format == formatJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, tasks)
	}

	md := markdownChecklist(tasks)
	if !cmd.stdoutIsTerminal() {
		_, err := fmt.Fprint(out, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func markdownChecklist(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")

	if len(tasks) == 0 {
		b.WriteString("_No tasks found_\n")
		return b.String()
	}

	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, t.Text)
	}

	counts := task.CountTasks(tasks)
	fmt.Fprintf(&b, "\n%d total tasks • %d completed • %d active\n", counts.Total, counts.Completed, counts.Active)
	return b.String()
}
