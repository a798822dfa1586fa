package config

import (
	"io"
	"log/slog"

	"git.home.luguber.info/inful/htmlpublish/internal/foundation/normalization"
)

// LogLevel is the logging.level value. It maps one-to-one onto slog levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}

var slogLevels = map[LogLevel]slog.Level{
	LogLevelDebug: slog.LevelDebug,
	LogLevelInfo:  slog.LevelInfo,
	LogLevelWarn:  slog.LevelWarn,
	LogLevelError: slog.LevelError,
}

var logLevelNormalizer = normalization.NewNormalizer(logLevels, LogLevelInfo)

// NormalizeLogLevel accepts any case and surrounding space; unknown input is info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// Slog returns the slog level for l. Unknown levels log at info.
func (l LogLevel) Slog() slog.Level {
	if lvl, ok := slogLevels[l]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// LogFormat is the logging.format value: text selects slog's text handler,
// json its JSON handler.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat accepts any case and surrounding space; unknown input is text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// Handler builds the slog handler for f writing to w.
func (f LogFormat) Handler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if f == LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
