// Package config loads interpreter defaults from an optional TOML
// file, the way the teacher's config package loads emulator settings,
// adapted from ARM emulator sections to the MIPS32 REPL's execution,
// REPL-behavior, and display sections.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/mips32repl/mips32repl/assembler"
)

// Config holds every interpreter default that a TOML file may override.
type Config struct {
	Execution struct {
		TextBase          uint32 `toml:"text_base"`
		DataBase          uint32 `toml:"data_base"`
		StackTop          uint32 `toml:"stack_top"`
		MaxStepsPerResume int    `toml:"max_steps_per_resume"`
	} `toml:"execution"`

	REPL struct {
		AutoExecute bool `toml:"auto_execute"`
		AutoDump    bool `toml:"auto_dump"`
		Trace       bool `toml:"trace"`
		Verbose     bool `toml:"verbose"`
	} `toml:"repl"`

	Display struct {
		NumberFormat     string `toml:"number_format"`
		RegistersPerLine int    `toml:"registers_per_line"`
	} `toml:"display"`
}

// DefaultConfig returns the interpreter's built-in defaults, used
// whenever no config file is present.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.TextBase = assembler.TextBase
	cfg.Execution.DataBase = assembler.DataBase
	cfg.Execution.StackTop = assembler.StackTop
	cfg.Execution.MaxStepsPerResume = 1_000_000

	cfg.REPL.AutoExecute = true
	cfg.REPL.AutoDump = false
	cfg.REPL.Trace = false
	cfg.REPL.Verbose = false

	cfg.Display.NumberFormat = "hex"
	cfg.Display.RegistersPerLine = 4

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mips32repl")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mips32repl")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to defaults
// when the file does not exist. A malformed file is still an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes the configuration to path as TOML.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
