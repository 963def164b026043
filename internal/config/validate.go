package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

const maxInitialRows = 500

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSheet(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind must be host:port: %w", err)
	}
	return nil
}

func (c *Config) validateSheet() error {
	if c.Sheet.InitialRows < 0 || c.Sheet.InitialRows > maxInitialRows {
		return fmt.Errorf("sheet.initial_rows must be between 0 and %d", maxInitialRows)
	}
	if strings.ContainsAny(c.Sheet.ExportFilename, `/\`) {
		return errors.New("sheet.export_filename must be a bare file name")
	}
	if err := ensureNonNegativeMap(map[string]int{
		"sheet.max_idle_minutes": c.Sheet.MaxIdleMinutes,
		"sheet.max_sheets":       c.Sheet.MaxSheets,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func ensureNonNegativeMap(values map[string]int) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	return nil
}
