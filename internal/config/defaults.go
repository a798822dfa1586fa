package config

import "time"

// Defaults applied to fields left empty in the file.
const (
	DefaultEntryPoint    = "index.html"
	DefaultStylesheetDir = "css"
	DefaultWatchDebounce = 300 * time.Millisecond
)

// applyDefaults fills empty fields. Enumerations are normalized first so that
// case and whitespace variants are accepted.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	} else if lvl, err := logLevelNormalizer.Parse(string(cfg.Logging.Level)); err == nil {
		cfg.Logging.Level = lvl
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	} else if f, err := logFormatNormalizer.Parse(string(cfg.Logging.Format)); err == nil {
		cfg.Logging.Format = f
	}

	if cfg.Stylesheet != nil {
		if cfg.Stylesheet.EntryPoint == "" {
			cfg.Stylesheet.EntryPoint = DefaultEntryPoint
		}
		if cfg.Stylesheet.Subdir == "" {
			cfg.Stylesheet.Subdir = DefaultStylesheetDir
		}
	}

	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultWatchDebounce.String()
	}
}
