package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("storage.backend", c.Storage.Backend, oneOf(BackendFile, BackendSQLite, BackendBadger, BackendMemory)),
		criterio.Run("storage.key", c.Storage.Key, notEmpty),
		criterio.Run("database.max_open_conns", c.Database.MaxOpenConns, positive),
		criterio.Run("database.max_idle_conns", c.Database.MaxIdleConns, positive),
		criterio.Run("database.busy_timeout", c.Database.BusyTimeout, positive),
		c.validateNotifications(),
		criterio.Run("tui.theme", c.TUI.Theme, oneOf(ThemeTokyoNight, ThemeGruvbox)),
	)
}

func (c *Config) validateNotifications() error {
	var errs criterio.FieldErrorsBuilder
	n := c.Notifications
	if n.FadeAfter <= 0 {
		errs = errs.Append("notifications.fade_after", errors.New("must be greater than zero"))
	}
	if n.ClearAfter <= n.FadeAfter {
		errs = errs.Append("notifications.clear_after", fmt.Errorf("must be greater than fade_after (%s)", n.FadeAfter))
	}
	return errs.ToError()
}

// ValidateDeep performs Validate and then checks that the config file and data
// directory are usable. The configPath argument specifies the config file
// location to validate (empty string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

func oneOf(allowed ...string) func(string) error {
	return func(s string) error {
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q (allowed: %v)", s, allowed)
	}
}
