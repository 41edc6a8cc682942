package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/iojson"
)

// ImportTask is one entry of the import document. IDs in the input are
// ignored; imported tasks get fresh ones.
type ImportTask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	Added    int `json:"added"`
	Rejected int `json:"rejected"`
}

type ImportCmd struct {
	flags *Flags
	app   *taskr.App
	fr    *iojson.FileReader[[]ImportTask]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *taskr.App) *ImportCmd {
	return &ImportCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[[]ImportTask]{},
	}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "import",
		Usage: "Add tasks from a JSON array",
		UsageText: `taskr import [-f file]

Read from stdin:
  taskr export | taskr --data-dir /tmp/other import

Read from file:
  taskr import -f tasks.json`,
		Description: `Adds each entry of a JSON array of {"text", "completed"} objects as a new
task. Entries follow the same rules as add; rejected ones are reported and
skipped. Completed entries are toggled after being added.

Output is a JSON object with the added and rejected counts.`,
		Flags:  []cli.Flag{cmd.fr.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if err := loadTasks(ctx, cmd.app, c); err != nil {
		return err
	}

	store := cmd.app.Tasks
	var result ImportResult
	for _, in := range input {
		t, err := store.AddTask(ctx, in.Text)
		if err != nil {
			result.Rejected++
			continue
		}
		result.Added++

		if in.Completed {
			if _, err := store.ToggleTask(ctx, t.ID); err != nil {
				return fmt.Errorf("complete task %d: %w", t.ID, err)
			}
		}
	}

	if err := checkSaved(cmd.app); err != nil {
		return err
	}
	return iojson.WriteLine(c.Root().Writer, result)
}
