// Package config loads editor configuration from a JSON file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/modaledit/internal/command"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidJSON indicates the configuration file is not valid JSON.
	ErrInvalidJSON = errors.New("invalid configuration JSON")

	// ErrUnknownMode indicates editor.mode names no known mode.
	ErrUnknownMode = errors.New("unknown editor mode")
)

// Config holds the editor configuration.
type Config struct {
	// Mode is the initial editing mode.
	Mode command.Mode

	// Text is the initial buffer content.
	Text string

	// TraceEnabled turns on diagnostic tracing of key handling.
	TraceEnabled bool

	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string

	// HookScripts are paths to Lua scripts registering custom-command
	// hooks.
	HookScripts []string
}

// Default returns the default configuration: Vim normal mode, empty buffer.
func Default() Config {
	return Config{
		Mode:     command.ModeVimNormal,
		LogLevel: "info",
	}
}

// Load reads a configuration file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes configuration JSON.
func Parse(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, ErrInvalidJSON
	}

	cfg := Default()
	doc := gjson.ParseBytes(data)

	if v := doc.Get("editor.mode"); v.Exists() {
		m, ok := command.ModeFromName(v.String())
		if !ok {
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, v.String())
		}
		cfg.Mode = m
	}
	if v := doc.Get("editor.text"); v.Exists() {
		cfg.Text = v.String()
	}
	if v := doc.Get("trace.enabled"); v.Exists() {
		cfg.TraceEnabled = v.Bool()
	}
	if v := doc.Get("log.level"); v.Exists() {
		cfg.LogLevel = v.String()
	}
	if v := doc.Get("hooks.scripts"); v.IsArray() {
		for _, item := range v.Array() {
			cfg.HookScripts = append(cfg.HookScripts, item.String())
		}
	}

	return cfg, nil
}

// Marshal encodes the configuration as JSON.
func Marshal(cfg Config) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	data, err = sjson.SetBytes(data, "editor.mode", cfg.Mode.String())
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	data, err = sjson.SetBytes(data, "editor.text", cfg.Text)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	data, err = sjson.SetBytes(data, "trace.enabled", cfg.TraceEnabled)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	data, err = sjson.SetBytes(data, "log.level", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	scripts := cfg.HookScripts
	if scripts == nil {
		scripts = []string{}
	}
	data, err = sjson.SetBytes(data, "hooks.scripts", scripts)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return data, nil
}

// WriteDefault writes the default configuration to path. Fails if the file
// already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
