// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/logging"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete enigma configuration.
type Config struct {
	Version string `toml:"version"`

	// Sender is the default name attached to sent messages.
	Sender string `toml:"sender"`

	Cipher CipherConfig `toml:"cipher"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
	Limits LimitsConfig `toml:"limits"`
	UI     UIConfig     `toml:"ui"`
}

// CipherConfig holds the default machine key. Both fields may be empty, in
// which case every command needs --rotors and --plugboard.
type CipherConfig struct {
	Rotors       string `toml:"rotors"`
	Plugboard    string `toml:"plugboard"`
	PreserveCase bool   `toml:"preserve_case"`
}

// StoreConfig selects the message log.
type StoreConfig struct {
	Backend string `toml:"backend"` // csv or sqlite
	Path    string `toml:"path"`    // empty means <config dir>/messages.<ext>
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `toml:"level"`
}

// LimitsConfig throttles message sending. Zero disables the limit.
type LimitsConfig struct {
	SendsPerSecond float64 `toml:"sends_per_second"`
	SendBurst      int     `toml:"send_burst"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	PreviewWidth int  `toml:"preview_width"`
	ShowKey      bool `toml:"show_key"`
}

// Store backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Sender:  "",

		Cipher: CipherConfig{
			Rotors:       "",
			Plugboard:    "",
			PreserveCase: false,
		},

		Store: StoreConfig{
			Backend: BackendCSV,
			Path:    "",
		},

		Log: LogConfig{
			Level: logging.DefaultLevel,
		},

		Limits: LimitsConfig{
			SendsPerSecond: 5,
			SendBurst:      10,
		},

		UI: UIConfig{
			PreviewWidth: 72,
			ShowKey:      false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the enigma configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("ENIGMA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".enigma"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// StorePath returns the message log path, defaulting to a file in ConfigDir
// named after the backend.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	ext := "csv"
	if c.Store.Backend == BackendSQLite {
		ext = "db"
	}
	return filepath.Join(dir, "messages."+ext), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file if it exists, applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path into cfg. Keys absent from the file keep the values
// cfg already had.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Store.Backend == "" {
		c.Store.Backend = d.Store.Backend
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.UI.PreviewWidth == 0 {
		c.UI.PreviewWidth = d.UI.PreviewWidth
	}
	if c.Limits.SendsPerSecond > 0 && c.Limits.SendBurst == 0 {
		c.Limits.SendBurst = 1
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path with owner-only permissions, since the file may
// hold a shared machine key.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# enigma configuration file")
	fmt.Fprintln(file, "#")
	fmt.Fprintln(file, "# cipher.rotors uses the form \"0:A 1:B 2:C\" (rotor index 0-4 : start letter)")
	fmt.Fprintln(file, "# cipher.plugboard uses the form \"AB CD EF\"")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Cipher.Rotors != "" || c.Cipher.Plugboard != "" {
		if c.Cipher.Rotors == "" {
			errs = append(errs, ValidationError{
				Field:   "cipher.rotors",
				Message: "required when cipher.plugboard is set",
			})
		} else if _, err := enigma.ParseKey(c.Cipher.Rotors, c.Cipher.Plugboard); err != nil {
			errs = append(errs, ValidationError{Field: "cipher", Message: err.Error()})
		}
	}

	switch c.Store.Backend {
	case BackendCSV, BackendSQLite:
	default:
		errs = append(errs, ValidationError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: csv, sqlite", c.Store.Backend),
		})
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{Field: "log.level", Message: err.Error()})
	}

	if c.Limits.SendsPerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.sends_per_second",
			Message: "cannot be negative",
		})
	}
	if c.Limits.SendBurst < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.send_burst",
			Message: "cannot be negative",
		})
	}

	if c.UI.PreviewWidth < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.preview_width",
			Message: "cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DefaultKey returns the configured machine key, or ok=false when none is set.
func (c *Config) DefaultKey() (key enigma.Key, ok bool, err error) {
	if c.Cipher.Rotors == "" {
		return enigma.Key{}, false, nil
	}
	key, err = enigma.ParseKey(c.Cipher.Rotors, c.Cipher.Plugboard)
	if err != nil {
		return enigma.Key{}, false, err
	}
	return key, true, nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ENIGMA_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if sender := os.Getenv("ENIGMA_SENDER"); sender != "" {
		c.Sender = sender
	}
	if backend := os.Getenv("ENIGMA_STORE"); backend != "" {
		c.Store.Backend = strings.ToLower(backend)
	}
	if path := os.Getenv("ENIGMA_STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if level := os.Getenv("ENIGMA_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its TOML key, e.g. "store.backend".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set parses value into the field named by its TOML key, e.g. "cipher.rotors".
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: expected true or false, got %q", key, value)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: expected an integer, got %q", key, value)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: expected a number, got %q", key, value)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%s is not a settable value", key)
	}
	return nil
}

// lookup walks the struct by toml tags.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("%s is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if strings.EqualFold(tag, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys lists every settable dot-notation key.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			tag := strings.Split(f.Tag.Get("toml"), ",")[0]
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, prefix+tag+".")
				continue
			}
			keys = append(keys, prefix+tag)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// A broken config file falls back to defaults with a warning on stderr.
func Global() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		loaded, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			loaded = Default()
		}
		globalConfig = loaded
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the cached configuration.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
}
