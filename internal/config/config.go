// Package config loads the YAML file that describes which post-processing
// steps run against a documentation tree.
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "htmlpublish.yaml"

// Config describes one documentation tree and the steps applied to it. A nil
// step section means the step is disabled.
type Config struct {
	BaseDir       string            `yaml:"base_dir"`
	Logging       LoggingConfig     `yaml:"logging"`
	AccessFile    *AccessFileConfig `yaml:"access_file,omitempty"`
	Stylesheet    *StylesheetConfig `yaml:"stylesheet,omitempty"`
	Doctype       *TemplateConfig   `yaml:"doctype,omitempty"`
	Script        *TemplateConfig   `yaml:"script,omitempty"`
	Favicon       *TemplateConfig   `yaml:"favicon,omitempty"`
	Analytics     *AnalyticsConfig  `yaml:"analytics,omitempty"`
	SkipIfPresent *bool             `yaml:"skip_if_present,omitempty"`
	Watch         WatchConfig       `yaml:"watch"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// AccessFileConfig names the file copied into every directory.
type AccessFileConfig struct {
	Source string `yaml:"source"`
}

// StylesheetConfig names the stylesheet and where it is placed.
type StylesheetConfig struct {
	Source     string `yaml:"source"`
	EntryPoint string `yaml:"entry_point"`
	Subdir     string `yaml:"subdir"`
}

// TemplateConfig holds replacement markup inline or in a file. Exactly one
// of the two is set.
type TemplateConfig struct {
	Template     string `yaml:"template,omitempty"`
	TemplateFile string `yaml:"template_file,omitempty"`
}

// AnalyticsConfig is a template plus the tracking id substituted into it.
type AnalyticsConfig struct {
	ID             string `yaml:"id"`
	TemplateConfig `yaml:",inline"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// Load reads configPath, applies environment overrides and defaults, and
// validates the result.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.ConfigError("failed to read configuration file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, ferrors.ConfigError("cannot resolve configuration path").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	cfg.dir = filepath.Dir(abs)

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML after expanding ${VAR} references. Unknown keys are
// rejected. No defaults or validation are applied.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, ferrors.ConfigError("failed to parse YAML").WithCause(err).Build()
	}
	return &cfg, nil
}

// ShouldSkipIfPresent reports whether updates leave already-processed files alone.
func (c *Config) ShouldSkipIfPresent() bool {
	return c.SkipIfPresent == nil || *c.SkipIfPresent
}

// WatchDebounce returns the parsed debounce interval. Validate has already
// rejected malformed values.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return DefaultWatchDebounce
	}
	return d
}

// resolvePaths makes relative file paths absolute against the config directory.
func (c *Config) resolvePaths() {
	c.BaseDir = c.resolve(c.BaseDir)
	if c.AccessFile != nil {
		c.AccessFile.Source = c.resolve(c.AccessFile.Source)
	}
	if c.Stylesheet != nil {
		c.Stylesheet.Source = c.resolve(c.Stylesheet.Source)
	}
	for _, t := range []*TemplateConfig{c.Doctype, c.Script, c.Favicon} {
		if t != nil {
			t.TemplateFile = c.resolve(t.TemplateFile)
		}
	}
	if c.Analytics != nil {
		c.Analytics.TemplateFile = c.resolve(c.Analytics.TemplateFile)
	}
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Content returns the inline template or the contents of the template file.
func (t *TemplateConfig) Content() (string, error) {
	if t.TemplateFile == "" {
		return t.Template, nil
	}
	data, err := os.ReadFile(t.TemplateFile)
	if err != nil {
		return "", ferrors.ConfigError("cannot read template file").
			WithCause(err).
			WithContext("path", t.TemplateFile).
			Build()
	}
	return string(data), nil
}
