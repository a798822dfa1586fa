package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyOperation  = "operation"
	KeyStep       = "step"
	KeyRoot       = "root"
	KeyPath       = "path"
	KeySource     = "source"
	KeyTag        = "tag"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
func Step(name string) slog.Attr    { return slog.String(KeyStep, name) }
func Root(dir string) slog.Attr     { return slog.String(KeyRoot, dir) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr     { return slog.String(KeySource, p) }
func Tag(t string) slog.Attr        { return slog.String(KeyTag, t) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Event(op string) slog.Attr     { return slog.String(KeyEvent, op) }

// Duration reports d in milliseconds under KeyDurationMS.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
