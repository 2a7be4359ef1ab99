package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/mdocs/internal/debug"
)

// Environment variables that override file configuration.
const (
	EnvDebug          = "MDOCS_DEBUG"
	EnvNoColor        = "MDOCS_NO_COLOR"
	EnvQuiet          = "MDOCS_QUIET"
	EnvMaxInlineDepth = "MDOCS_MAX_INLINE_DEPTH"
	EnvCacheSize      = "MDOCS_CACHE_SIZE"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for .mdocs.yaml files.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
// Fields absent from the file keep their default values.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	var partial partialConfig
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
	}

	cfg := DefaultConfig()
	mergePartial(cfg, &partial)

	if err := l.Validate(cfg); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.File = path
		}
		return nil, err
	}

	debug.Debug("[config] Loaded configuration from %s", path)
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			debug.Debug("[config] No configuration at %s, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if !strings.HasPrefix(config.Templates.Extension, ".") {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.extension", "extension must start with '.'")
	}
	if !strings.HasPrefix(config.Templates.DefaultExtension, ".") {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.default_extension", "extension must start with '.'")
	}
	if config.Templates.MaxInlineDepth < 1 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.max_inline_depth", "max inline depth must be at least 1")
	}
	if config.Templates.EditNoteRepeat < 1 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.edit_note_repeat", "edit note repeat must be at least 1")
	}
	if config.Cache.Size < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "cache.size", "cache size cannot be negative")
	}
	return nil
}

// mergePartial copies every field present in the file onto cfg.
func mergePartial(cfg *Config, p *partialConfig) {
	if t := p.Templates; t != nil {
		if t.Extension != nil {
			cfg.Templates.Extension = *t.Extension
		}
		if t.DefaultExtension != nil {
			cfg.Templates.DefaultExtension = *t.DefaultExtension
		}
		if t.IgnoreDirs != nil {
			cfg.Templates.IgnoreDirs = t.IgnoreDirs
		}
		if t.MaxInlineDepth != nil {
			cfg.Templates.MaxInlineDepth = *t.MaxInlineDepth
		}
		if t.EditNoteRepeat != nil {
			cfg.Templates.EditNoteRepeat = *t.EditNoteRepeat
		}
	}
	if o := p.Output; o != nil {
		if o.Color != nil {
			cfg.Output.Color = *o.Color
		}
		if o.Quiet != nil {
			cfg.Output.Quiet = *o.Quiet
		}
		if o.Debug != nil {
			cfg.Output.Debug = *o.Debug
		}
	}
	if c := p.Cache; c != nil {
		if c.Enabled != nil {
			cfg.Cache.Enabled = *c.Enabled
		}
		if c.Size != nil {
			cfg.Cache.Size = *c.Size
		}
	}
}

// ReadEnv collects MDOCS_* settings from an optional dotenv file and the process
// environment. Process variables win over the dotenv file.
func ReadEnv(dotenvPath string) (map[string]string, error) {
	env := make(map[string]string)

	if dotenvPath != "" {
		fileEnv, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			for k, v := range fileEnv {
				env[k] = v
			}
			debug.Debug("[config] Read %d variable(s) from %s", len(fileEnv), dotenvPath)
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, NewConfigErrorWithCause(ConfigInvalid, dotenvPath, "failed to read dotenv file", err)
		}
	}

	for _, key := range []string{EnvDebug, EnvNoColor, EnvQuiet, EnvMaxInlineDepth, EnvCacheSize} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides cfg with the recognised MDOCS_* values in env.
func ApplyEnv(cfg *Config, env map[string]string) error {
	for key, raw := range env {
		var err error
		switch key {
		case EnvDebug:
			cfg.Output.Debug, err = strconv.ParseBool(raw)
		case EnvQuiet:
			cfg.Output.Quiet, err = strconv.ParseBool(raw)
		case EnvNoColor:
			var noColor bool
			noColor, err = strconv.ParseBool(raw)
			cfg.Output.Color = !noColor
		case EnvMaxInlineDepth:
			cfg.Templates.MaxInlineDepth, err = strconv.Atoi(raw)
		case EnvCacheSize:
			cfg.Cache.Size, err = strconv.Atoi(raw)
		default:
			continue
		}
		if err != nil {
			return NewConfigErrorWithCause(ConfigInvalid, "", fmt.Sprintf("invalid value %q for %s", raw, key), err)
		}
	}
	return NewLoader().Validate(cfg)
}
