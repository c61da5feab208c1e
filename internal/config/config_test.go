package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/granite/internal/markdown"
)

// useConfigPath points ConfigPath at path for the duration of the test.
func useConfigPath(t *testing.T, path string) {
	t.Helper()
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = originalConfigPath
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NotesDir == "" {
		t.Error("Expected NotesDir to be set")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.DiffWidth != 100 {
		t.Errorf("Expected DiffWidth to be 100, got %d", cfg.DiffWidth)
	}
	if !cfg.RenderDiff {
		t.Error("Expected RenderDiff to be enabled")
	}
	if cfg.Extensions.Options() != markdown.DefaultOptions() {
		t.Errorf("Expected all extensions enabled, got %+v", cfg.Extensions)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty log_file",
			modify:  func(c *Config) { c.LogFile = "" },
			wantErr: true,
		},
		{
			name:    "unknown log_level",
			modify:  func(c *Config) { c.LogLevel = "chatty" },
			wantErr: true,
		},
		{
			name:    "debug log_level",
			modify:  func(c *Config) { c.LogLevel = "debug" },
			wantErr: false,
		},
		{
			name:    "zero diff_width",
			modify:  func(c *Config) { c.DiffWidth = 0 },
			wantErr: true,
		},
		{
			name:    "negative diff_width",
			modify:  func(c *Config) { c.DiffWidth = -5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	useConfigPath(t, testConfigPath)

	testCfg := DefaultConfig()
	testCfg.LogFile = "/tmp/granite-test.log"
	testCfg.LogLevel = "warn"
	testCfg.DiffWidth = 80
	testCfg.RenderDiff = false
	testCfg.Extensions.Tables = false

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.DiffWidth != 80 {
		t.Errorf("DiffWidth mismatch: got %d, want 80", loadedCfg.DiffWidth)
	}
	if loadedCfg.RenderDiff {
		t.Error("RenderDiff should be disabled")
	}
	if loadedCfg.Extensions.Tables {
		t.Error("Tables should be disabled")
	}
	if !loadedCfg.Extensions.WikiLinks {
		t.Error("WikiLinks should stay enabled")
	}
	if loadedCfg.Level() != log.WarnLevel {
		t.Errorf("Level() = %v, want %v", loadedCfg.Level(), log.WarnLevel)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	useConfigPath(t, testConfigPath)

	data := `{"extensions": {"wiki_links": false}}`
	if err := os.WriteFile(testConfigPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	opts := cfg.Extensions.Options()
	if opts.WikiLinks {
		t.Error("WikiLinks should be disabled")
	}
	if !opts.FrontMatter || !opts.Tables || !opts.Strikethrough || !opts.TaskLists {
		t.Errorf("missing keys should keep defaults, got %+v", opts)
	}
	if cfg.DiffWidth != 100 {
		t.Errorf("DiffWidth = %d, want default 100", cfg.DiffWidth)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"log_file": `},
		{"bad level", `{"log_level": "loud"}`},
		{"bad width", `{"diff_width": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testConfigPath := filepath.Join(t.TempDir(), "config.json")
			useConfigPath(t, testConfigPath)
			if err := os.WriteFile(testConfigPath, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	useConfigPath(t, filepath.Join(tmpDir, "nonexistent.json"))

	// Load should return default config when file doesn't exist
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.DiffWidth != 100 {
		t.Errorf("Expected default diff width 100, got %d", cfg.DiffWidth)
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		contains string // The output should contain this
	}{
		{
			name:     "tilde expansion",
			input:    "~/test",
			contains: homeDir,
		},
		{
			name:     "tilde only",
			input:    "~",
			contains: homeDir,
		},
		{
			name:     "absolute path",
			input:    "/tmp/test",
			contains: "/tmp/test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result == "" {
				t.Error("expandPath() returned empty string")
			}
			// Just verify it's not the original unexpanded path
			if tt.input[0] == '~' && result == tt.input {
				t.Errorf("Path was not expanded: %s", result)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	tmpDir := t.TempDir()
	useConfigPath(t, filepath.Join(tmpDir, "config.json"))

	testCfg := DefaultConfig()
	testCfg.NotesDir = "~/notes"
	testCfg.LogFile = "~/granite.log"

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify paths are expanded (no longer contain ~)
	if loadedCfg.NotesDir[0] == '~' {
		t.Error("NotesDir was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
