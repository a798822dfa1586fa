package config

import (
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
)

// Validate checks that every configured step is complete. It does not touch
// the filesystem; missing files surface when the step runs.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validateBaseDir,
		c.validateLogging,
		c.validateAccessFile,
		c.validateStylesheet,
		c.validateTemplates,
		c.validateAnalytics,
		c.validateWatch,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateBaseDir() error {
	if strings.TrimSpace(c.BaseDir) == "" {
		return invalid("base_dir is required", "base_dir")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if c.Logging.Level != "" && !logLevelNormalizer.Valid(c.Logging.Level) {
		return invalid("unsupported log level "+string(c.Logging.Level), "logging.level")
	}
	if c.Logging.Format != "" && !logFormatNormalizer.Valid(c.Logging.Format) {
		return invalid("unsupported log format "+string(c.Logging.Format), "logging.format")
	}
	return nil
}

func (c *Config) validateAccessFile() error {
	if c.AccessFile != nil && c.AccessFile.Source == "" {
		return invalid("access_file.source is required", "access_file.source")
	}
	return nil
}

func (c *Config) validateStylesheet() error {
	if c.Stylesheet == nil {
		return nil
	}
	if c.Stylesheet.Source == "" {
		return invalid("stylesheet.source is required", "stylesheet.source")
	}
	if sub := c.Stylesheet.Subdir; sub != "" && !filepath.IsLocal(sub) {
		return invalid("stylesheet.subdir must be a relative path below each directory", "stylesheet.subdir")
	}
	return nil
}

func (c *Config) validateTemplates() error {
	sections := []struct {
		name string
		tmpl *TemplateConfig
	}{
		{"doctype", c.Doctype},
		{"script", c.Script},
		{"favicon", c.Favicon},
	}
	for _, s := range sections {
		if s.tmpl == nil {
			continue
		}
		if err := s.tmpl.validate(s.name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	if c.Analytics == nil {
		return nil
	}
	if strings.TrimSpace(c.Analytics.ID) == "" {
		return invalid("analytics.id is required (or set "+EnvAnalyticsID+")", "analytics.id")
	}
	return c.Analytics.TemplateConfig.validate("analytics")
}

func (c *Config) validateWatch() error {
	if c.Watch.Debounce == "" {
		return nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return invalid("watch.debounce must be a positive duration", "watch.debounce")
	}
	return nil
}

func (t *TemplateConfig) validate(section string) error {
	switch {
	case t.Template != "" && t.TemplateFile != "":
		return invalid(section+": template and template_file are mutually exclusive", section)
	case t.Template == "" && t.TemplateFile == "":
		return invalid(section+": one of template or template_file is required", section)
	}
	return nil
}

func invalid(msg, field string) error {
	return ferrors.ConfigError(msg).WithContext("field", field).Build()
}
