package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"feesheet/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "feesheet", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Paths.AssetsDir != filepath.Join(tempHome, ".local", "share", "feesheet", "assets") {
		t.Fatalf("unexpected assets dir: %q", cfg.Paths.AssetsDir)
	}
	if cfg.Server.Bind != "127.0.0.1:5000" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.Sheet.InitialRows != 6 {
		t.Fatalf("unexpected initial rows: %d", cfg.Sheet.InitialRows)
	}
	if cfg.Sheet.ExportFilename != "Monthly_Fees_Note.txt" {
		t.Fatalf("unexpected export filename: %q", cfg.Sheet.ExportFilename)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.AssetsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "feesheet.toml")

	type payload struct {
		Server struct {
			Bind string `toml:"bind"`
		} `toml:"server"`
		Paths struct {
			AssetsDir string `toml:"assets_dir"`
		} `toml:"paths"`
		Sheet struct {
			InitialRows int `toml:"initial_rows"`
		} `toml:"sheet"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Server.Bind = "0.0.0.0:8080"
	custom.Paths.AssetsDir = filepath.Join(tempDir, "static")
	custom.Sheet.InitialRows = 2
	custom.Logging.Format = "JSON"
	custom.Logging.Level = " Debug "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Server.Bind != "0.0.0.0:8080" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.Paths.AssetsDir != filepath.Join(tempDir, "static") {
		t.Fatalf("unexpected assets dir: %q", cfg.Paths.AssetsDir)
	}
	if cfg.Sheet.InitialRows != 2 {
		t.Fatalf("unexpected initial rows: %d", cfg.Sheet.InitialRows)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if cfg.Sheet.MaxSheets != config.Default().Sheet.MaxSheets {
		t.Fatalf("expected default max sheets, got %d", cfg.Sheet.MaxSheets)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "feesheet.toml")
	if err := os.WriteFile(configPath, []byte("[server]\nport = 5000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverridesBind(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FEESHEET_BIND", "127.0.0.1:9090")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:9090" {
		t.Fatalf("expected env bind, got %q", cfg.Server.Bind)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "bind", mutate: func(c *config.Config) { c.Server.Bind = "localhost" }, want: "server.bind"},
		{name: "negative rows", mutate: func(c *config.Config) { c.Sheet.InitialRows = -1 }, want: "sheet.initial_rows"},
		{name: "too many rows", mutate: func(c *config.Config) { c.Sheet.InitialRows = 100000 }, want: "sheet.initial_rows"},
		{name: "filename path", mutate: func(c *config.Config) { c.Sheet.ExportFilename = "../note.txt" }, want: "sheet.export_filename"},
		{name: "idle", mutate: func(c *config.Config) { c.Sheet.MaxIdleMinutes = -5 }, want: "sheet.max_idle_minutes"},
		{name: "level", mutate: func(c *config.Config) { c.Logging.Level = "verbose" }, want: "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	t.Setenv("HOME", t.TempDir())
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Sheet.InitialRows != 6 {
		t.Fatalf("unexpected sample initial rows: %d", cfg.Sheet.InitialRows)
	}
}
