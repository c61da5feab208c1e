package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/gerunddev/granite/internal/markdown"
)

// Config represents the granite configuration
type Config struct {
	NotesDir   string     `json:"notes_dir"`
	LogFile    string     `json:"log_file"`
	LogLevel   string     `json:"log_level"`
	Extensions Extensions `json:"extensions"`
	DiffWidth  int        `json:"diff_width"`
	RenderDiff bool       `json:"render_diff"`
}

// Extensions selects the markdown extensions on top of CommonMark
type Extensions struct {
	FrontMatter   bool `json:"front_matter"`
	Tables        bool `json:"tables"`
	WikiLinks     bool `json:"wiki_links"`
	Strikethrough bool `json:"strikethrough"`
	TaskLists     bool `json:"task_lists"`
}

// Options converts the extension switches into parser options
func (e Extensions) Options() markdown.Options {
	return markdown.Options{
		FrontMatter:   e.FrontMatter,
		Tables:        e.Tables,
		WikiLinks:     e.WikiLinks,
		Strikethrough: e.Strikethrough,
		TaskLists:     e.TaskLists,
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	opts := markdown.DefaultOptions()
	return &Config{
		NotesDir: filepath.Join(home, "notes"),
		LogFile:  "/tmp/granite.log",
		LogLevel: "info",
		Extensions: Extensions{
			FrontMatter:   opts.FrontMatter,
			Tables:        opts.Tables,
			WikiLinks:     opts.WikiLinks,
			Strikethrough: opts.Strikethrough,
			TaskLists:     opts.TaskLists,
		},
		DiffWidth:  100,
		RenderDiff: true,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "granite", "config.json")
	}
	return filepath.Join(home, ".config", "granite", "config.json")
}

// rawConfig mirrors the file format. Pointers tell a missing key from a
// false or zero value so that defaults survive partial files.
type rawConfig struct {
	NotesDir   string         `json:"notes_dir,omitempty"`
	LogFile    string         `json:"log_file,omitempty"`
	LogLevel   string         `json:"log_level,omitempty"`
	Extensions *rawExtensions `json:"extensions,omitempty"`
	DiffWidth  *int           `json:"diff_width,omitempty"`
	RenderDiff *bool          `json:"render_diff,omitempty"`
}

type rawExtensions struct {
	FrontMatter   *bool `json:"front_matter,omitempty"`
	Tables        *bool `json:"tables,omitempty"`
	WikiLinks     *bool `json:"wiki_links,omitempty"`
	Strikethrough *bool `json:"strikethrough,omitempty"`
	TaskLists     *bool `json:"task_lists,omitempty"`
}

// Load reads configuration from the config directory
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.NotesDir != "" {
		cfg.NotesDir = raw.NotesDir
	}
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.DiffWidth != nil {
		cfg.DiffWidth = *raw.DiffWidth
	}
	if raw.RenderDiff != nil {
		cfg.RenderDiff = *raw.RenderDiff
	}
	if ext := raw.Extensions; ext != nil {
		setBool(&cfg.Extensions.FrontMatter, ext.FrontMatter)
		setBool(&cfg.Extensions.Tables, ext.Tables)
		setBool(&cfg.Extensions.WikiLinks, ext.WikiLinks)
		setBool(&cfg.Extensions.Strikethrough, ext.Strikethrough)
		setBool(&cfg.Extensions.TaskLists, ext.TaskLists)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Expand paths
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.DiffWidth <= 0 {
		return fmt.Errorf("diff_width must be positive")
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.NotesDir, err = expandPath(c.NotesDir)
	if err != nil {
		return fmt.Errorf("failed to expand notes_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
