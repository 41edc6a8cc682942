package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/core/config"
	"github.com/colonyops/taskr/pkg/iojson"
)

// ConfigProblem is a single validation failure.
type ConfigProblem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ConfigReport is the output of config validate.
type ConfigReport struct {
	Valid      bool            `json:"valid"`
	ConfigFile string          `json:"config_file"`
	DataDir    string          `json:"data_dir"`
	Errors     []ConfigProblem `json:"errors,omitempty"`
}

type ConfigValidateCmd struct {
	flags *Flags
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskr config validate",
				Description: "Loads the configuration file, checks every setting and that the data directory is usable, and prints the result as JSON.",
				Action:      cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report := cmd.validate()

	if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
		return err
	}
	if !report.Valid {
		return errRejected
	}
	return nil
}

func (cmd *ConfigValidateCmd) validate() ConfigReport {
	report := ConfigReport{
		ConfigFile: cmd.flags.ConfigPath,
		DataDir:    cmd.flags.DataDir,
	}

	cfg, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir)
	if err == nil {
		err = cfg.ValidateDeep(cmd.flags.ConfigPath)
	}

	report.Valid = err == nil
	report.Errors = configProblems(err)
	return report
}

func configProblems(err error) []ConfigProblem {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []ConfigProblem{{Message: err.Error()}}
	}

	problems := make([]ConfigProblem, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, ConfigProblem{Field: fe.Field, Message: fe.Err.Error()})
	}
	return problems
}
