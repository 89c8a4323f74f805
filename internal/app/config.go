// Package app wires a loaded ROM, the cartridge subsystem and the CHR
// viewer together, and provides configuration management for the tool.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`

	// Internal state
	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Scale  int `json:"scale"` // NES resolution multiplier
}

// VideoConfig contains rendering configuration
type VideoConfig struct {
	Backend string `json:"backend"` // "ebitengine", "headless"
	VSync   bool   `json:"vsync"`
}

// DebugConfig contains debugging and development options
type DebugConfig struct {
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// PathsConfig contains file and directory paths
type PathsConfig struct {
	ROMs     string `json:"roms"`
	SaveData string `json:"save_data"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  512,
			Height: 480,
			Scale:  2, // 512x480 (256x240 * 2)
		},
		Video: VideoConfig{
			Backend: "ebitengine", // Default to Ebitengine for GUI mode
			VSync:   true,
		},
		Debug: DebugConfig{
			EnableLogging: false,
			LogLevel:      "INFO",
		},
		Paths: PathsConfig{
			ROMs:     "./roms",
			SaveData: "./saves",
		},
	}
}

// GetDefaultConfigPath returns the default location of the config file
func GetDefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "nescart.json"
	}
	return filepath.Join(configDir, "nescart", "config.json")
}

// LoadFromFile loads configuration from a JSON file
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	// Missing file is not an error - save the defaults and move on
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.SaveToFile(path); err != nil {
			return err
		}
		if err := c.createDirectories(); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := c.createDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the current config file
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}
	return c.SaveToFile(c.configPath)
}

// validate rejects invalid window dimensions and unknown video backends,
// and falls back to defaults for a non-positive scale or an empty backend
func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window dimensions: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	switch c.Video.Backend {
	case "ebitengine", "headless":
	case "":
		c.Video.Backend = "ebitengine"
	default:
		return fmt.Errorf("unknown video backend: %q", c.Video.Backend)
	}
	return nil
}

// createDirectories ensures the configured directories exist
func (c *Config) createDirectories() error {
	for _, dir := range []string{c.Paths.ROMs, c.Paths.SaveData} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
