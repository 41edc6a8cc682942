package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/core/config"
	"github.com/colonyops/taskr/internal/core/task"
	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/pkg/tuitest"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func openApp(t *testing.T, dataDir string) *taskr.App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir
	app, err := taskr.Open(&cfg)
	require.NoError(t, err)
	return app
}

// runRoot executes one taskr invocation against dataDir, the way main does
// with a fresh process per command.
func runRoot(t *testing.T, dataDir string, args ...string) result {
	t.Helper()

	app := openApp(t, dataDir)
	defer func() { require.NoError(t, app.Close()) }()

	return runCmd(t, NewRoot(&Flags{}, app), args...)
}

func runCmd(t *testing.T, root *cli.Command, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	root.Writer = &out
	root.ErrWriter = &errOut
	root.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := root.Run(context.Background(), append([]string{"taskr"}, args...))
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func decodeTask(t *testing.T, line string) task.Task {
	t.Helper()

	var got task.Task
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(line)), &got))
	return got
}

func decodeLines(t *testing.T, out string) []task.Task {
	t.Helper()

	var tasks []task.Task
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		tasks = append(tasks, decodeTask(t, line))
	}
	return tasks
}

func addTask(t *testing.T, dataDir, text string) task.Task {
	t.Helper()

	res := runRoot(t, dataDir, "add", text)
	require.NoError(t, res.err, res.stderr)
	return decodeTask(t, res.stdout)
}

func id(tk task.Task) string {
	return strconv.FormatInt(tk.ID, 10)
}

func TestAdd(t *testing.T) {
	dir := t.TempDir()

	res := runRoot(t, dir, "add", "  Buy", "milk  ")
	require.NoError(t, res.err)

	got := decodeTask(t, res.stdout)
	assert.Equal(t, "Buy milk", got.Text)
	assert.False(t, got.Completed)
	assert.NotZero(t, got.ID)
	assert.Contains(t, res.stderr, "✓ Task added successfully!")

	t.Run("persisted", func(t *testing.T) {
		res := runRoot(t, dir, "ls")
		require.NoError(t, res.err)
		assert.Equal(t, []task.Task{got}, decodeLines(t, res.stdout))
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		res := runRoot(t, dir, "add", "buy MILK")
		require.Error(t, res.err)
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "⚠ This task already exists!")
	})

	t.Run("empty rejected", func(t *testing.T) {
		res := runRoot(t, dir, "add", "   ")
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "Please enter a task!")
	})

	t.Run("too long rejected", func(t *testing.T) {
		res := runRoot(t, dir, "add", strings.Repeat("a", task.MaxTextLength+1))
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "Task is too long! Max 200 characters.")
	})
}

func TestLs_Filter(t *testing.T) {
	dir := t.TempDir()
	milk := addTask(t, dir, "Milk")
	addTask(t, dir, "Bread")
	require.NoError(t, runRoot(t, dir, "toggle", id(milk)).err)

	tests := []struct {
		filter string
		want   []string
	}{
		{"all", []string{"Milk", "Bread"}},
		{"active", []string{"Bread"}},
		{"completed", []string{"Milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			res := runRoot(t, dir, "ls", "--filter", tt.filter)
			require.NoError(t, res.err)

			var texts []string
			for _, tk := range decodeLines(t, res.stdout) {
				texts = append(texts, tk.Text)
			}
			assert.Equal(t, tt.want, texts)
			assert.Empty(t, res.stderr, "info notifications are not printed")
		})
	}

	t.Run("stats", func(t *testing.T) {
		res := runRoot(t, dir, "ls", "--stats")
		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, "2 total tasks • 1 completed • 1 active")
	})

	t.Run("invalid filter", func(t *testing.T) {
		res := runRoot(t, dir, "ls", "--filter", "done")
		require.ErrorIs(t, res.err, task.ErrInvalidFilter)
	})
}

func TestLs_Empty(t *testing.T) {
	res := runRoot(t, t.TempDir(), "ls")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestToggle(t *testing.T) {
	dir := t.TempDir()
	milk := addTask(t, dir, "Milk")

	res := runRoot(t, dir, "toggle", id(milk))
	require.NoError(t, res.err)
	assert.True(t, decodeTask(t, res.stdout).Completed)
	assert.Contains(t, res.stderr, "Task marked as completed!")

	res = runRoot(t, dir, "toggle", id(milk))
	require.NoError(t, res.err)
	assert.False(t, decodeTask(t, res.stdout).Completed)
	assert.Contains(t, res.stderr, "Task marked as active!")

	t.Run("unknown id", func(t *testing.T) {
		res := runRoot(t, dir, "toggle", "42")
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "✕ Task not found!")
	})

	t.Run("bad id", func(t *testing.T) {
		res := runRoot(t, dir, "toggle", "abc")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), `invalid task id "abc"`)
	})

	t.Run("missing id", func(t *testing.T) {
		res := runRoot(t, dir, "toggle")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "task id is required")
	})
}

func TestEdit(t *testing.T) {
	dir := t.TempDir()
	milk := addTask(t, dir, "Milk")
	addTask(t, dir, "Bread")

	res := runRoot(t, dir, "edit", id(milk), "Oat", "milk")
	require.NoError(t, res.err)
	got := decodeTask(t, res.stdout)
	assert.Equal(t, milk.ID, got.ID)
	assert.Equal(t, "Oat milk", got.Text)
	assert.Contains(t, res.stderr, "Task updated successfully!")

	t.Run("same text allowed", func(t *testing.T) {
		res := runRoot(t, dir, "edit", id(milk), "OAT MILK")
		require.NoError(t, res.err)
		assert.Equal(t, "OAT MILK", decodeTask(t, res.stdout).Text)
	})

	t.Run("duplicate of another task", func(t *testing.T) {
		res := runRoot(t, dir, "edit", id(milk), "bread")
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "This task already exists!")
	})

	t.Run("unknown id", func(t *testing.T) {
		res := runRoot(t, dir, "edit", "42", "anything")
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "Invalid task!")
	})
}

func newRm(t *testing.T, dir string, interactive bool, answer bool) (*cli.Command, *taskr.App, *int) {
	t.Helper()

	app := openApp(t, dir)
	t.Cleanup(func() { _ = app.Close() })

	prompts := 0
	rm := NewRmCmd(&Flags{}, app)
	rm.interactive = func() bool { return interactive }
	rm.confirm = func(pd task.PendingDelete) (bool, error) {
		prompts++
		return answer, nil
	}

	return rm.Register(&cli.Command{Name: "taskr"}), app, &prompts
}

func TestRm(t *testing.T) {
	t.Run("yes skips the prompt", func(t *testing.T) {
		dir := t.TempDir()
		milk := addTask(t, dir, "Milk")

		root, _, prompts := newRm(t, dir, false, false)
		res := runCmd(t, root, "rm", "--yes", id(milk))
		require.NoError(t, res.err)
		assert.Zero(t, *prompts)
		assert.Contains(t, res.stderr, "Task deleted successfully!")
	})

	t.Run("confirmed", func(t *testing.T) {
		dir := t.TempDir()
		milk := addTask(t, dir, "Milk")
		addTask(t, dir, "Bread")

		root, app, prompts := newRm(t, dir, true, true)
		res := runCmd(t, root, "rm", id(milk))
		require.NoError(t, res.err)
		assert.Equal(t, 1, *prompts)

		require.Len(t, app.Tasks.Tasks(), 1)
		assert.Equal(t, "Bread", app.Tasks.Tasks()[0].Text)
	})

	t.Run("declined", func(t *testing.T) {
		dir := t.TempDir()
		milk := addTask(t, dir, "Milk")

		root, app, _ := newRm(t, dir, true, false)
		res := runCmd(t, root, "rm", id(milk))
		require.NoError(t, res.err)
		assert.Len(t, app.Tasks.Tasks(), 1)
		_, pending := app.Tasks.PendingDelete()
		assert.False(t, pending)
		assert.Empty(t, res.stderr)
	})

	t.Run("no terminal requires yes", func(t *testing.T) {
		dir := t.TempDir()
		milk := addTask(t, dir, "Milk")

		root, _, _ := newRm(t, dir, false, true)
		res := runCmd(t, root, "rm", id(milk))
		require.ErrorIs(t, res.err, ErrConfirmationRequired)
	})

	t.Run("unknown id", func(t *testing.T) {
		root, _, prompts := newRm(t, t.TempDir(), true, true)
		res := runCmd(t, root, "rm", "42")
		require.Error(t, res.err)
		assert.Zero(t, *prompts)
		assert.Contains(t, res.stderr, "Task not found!")
	})
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	milk := addTask(t, dir, "Milk")
	addTask(t, dir, "Bread")
	require.NoError(t, runRoot(t, dir, "toggle", id(milk)).err)

	t.Run("json", func(t *testing.T) {
		res := runRoot(t, dir, "export")
		require.NoError(t, res.err)

		var tasks []task.Task
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &tasks))
		require.Len(t, tasks, 2)
		assert.Equal(t, "Milk", tasks[0].Text)
		assert.True(t, tasks[0].Completed)
	})

	t.Run("markdown plain", func(t *testing.T) {
		res := runRoot(t, dir, "export", "--format", "md")
		require.NoError(t, res.err)
		assert.Equal(t, "# Tasks\n\n- [x] Milk\n- [ ] Bread\n\n2 total tasks • 1 completed • 1 active\n", res.stdout)
	})

	t.Run("markdown rendered for a terminal", func(t *testing.T) {
		app := openApp(t, dir)
		defer func() { _ = app.Close() }()

		export := NewExportCmd(&Flags{}, app)
		export.stdoutIsTerminal = func() bool { return true }

		res := runCmd(t, export.Register(&cli.Command{Name: "taskr"}), "export", "--format", "md")
		require.NoError(t, res.err)

		out := tuitest.StripANSI(res.stdout)
		assert.Contains(t, out, "Tasks")
		assert.Contains(t, out, "Milk")
		assert.Contains(t, out, "Bread")
		assert.NotContains(t, out, "# Tasks")
	})

	t.Run("unknown format", func(t *testing.T) {
		res := runRoot(t, dir, "export", "--format", "csv")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), `unknown format "csv"`)
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		res := runRoot(t, t.TempDir(), "export")
		require.NoError(t, res.err)
		assert.Equal(t, "[]\n", res.stdout)
	})
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	addTask(t, dir, "Milk")

	app := openApp(t, dir)
	defer func() { _ = app.Close() }()

	imp := NewImportCmd(&Flags{}, app)
	imp.fr.Stdin = strings.NewReader(`[
		{"id": 1, "text": "Bread", "completed": true},
		{"text": "milk"},
		{"text": "   "},
		{"text": "Eggs"}
	]`)

	res := runCmd(t, imp.Register(&cli.Command{Name: "taskr"}), "import")
	require.NoError(t, res.err)

	var summary ImportResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary))
	assert.Equal(t, ImportResult{Added: 2, Rejected: 2}, summary)
	assert.Contains(t, res.stderr, "This task already exists!")
	assert.Contains(t, res.stderr, "Please enter a task!")

	tasks := app.Tasks.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "Bread", tasks[1].Text)
	assert.True(t, tasks[1].Completed)
	assert.NotEqual(t, int64(1), tasks[1].ID)
	assert.Equal(t, "Eggs", tasks[2].Text)
	assert.False(t, tasks[2].Completed)
}

func TestImport_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"text":"From file"}]`), 0o644))

	res := runRoot(t, dir, "import", "-f", path)
	require.NoError(t, res.err)

	res = runRoot(t, dir, "ls")
	require.NoError(t, res.err)
	tasks := decodeLines(t, res.stdout)
	require.Len(t, tasks, 1)
	assert.Equal(t, "From file", tasks[0].Text)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dataDir := t.TempDir()
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  backend: sqlite\n"), 0o644))

		res := runRoot(t, dataDir, "--config", configPath, "--data-dir", dataDir, "config", "validate")
		require.NoError(t, res.err)

		var report ConfigReport
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
		assert.True(t, report.Valid)
		assert.Equal(t, configPath, report.ConfigFile)
		assert.Empty(t, report.Errors)
	})

	t.Run("invalid", func(t *testing.T) {
		dataDir := t.TempDir()
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("tui:\n  theme: neon\n"), 0o644))

		res := runRoot(t, dataDir, "--config", configPath, "--data-dir", dataDir, "config", "validate")
		require.Error(t, res.err)

		var report ConfigReport
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "tui.theme", report.Errors[0].Field)
	})

	t.Run("unparseable", func(t *testing.T) {
		dataDir := t.TempDir()
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("storage: [\n"), 0o644))

		res := runRoot(t, dataDir, "--config", configPath, "--data-dir", dataDir, "config", "validate")
		require.Error(t, res.err)

		var report ConfigReport
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
		require.Len(t, report.Errors, 1)
		assert.Empty(t, report.Errors[0].Field)
		assert.Contains(t, report.Errors[0].Message, "parse config file")
	})
}

func TestRoot_UnknownCommand(t *testing.T) {
	res := runRoot(t, t.TempDir(), "frobnicate")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `unknown command "frobnicate"`)
}

func TestNeedsApp(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"taskr", "ls"}, true},
		{[]string{"taskr", "config", "validate"}, false},
	}

	noop := func(context.Context, *cli.Command) error { return nil }

	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			var got bool
			root := &cli.Command{
				Name: "taskr",
				Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
					got = NeedsApp(c)
					return ctx, nil
				},
				Commands: []*cli.Command{
					{Name: "ls", Action: noop},
					{Name: "config", Commands: []*cli.Command{{Name: "validate", Action: noop}}},
				},
			}

			require.NoError(t, root.Run(context.Background(), tt.args))
			assert.Equal(t, tt.want, got)
		})
	}
}
