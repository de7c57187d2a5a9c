package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyRepo       = "repository"
	KeyBackend    = "backend"
	KeyOp         = "op"
	KeyDurationMS = "duration_ms"
	KeyFormat     = "format"
	KeyPath       = "path"
	KeyKey        = "key"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func Backend(b string) slog.Attr      { return slog.String(KeyBackend, b) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Key(k string) slog.Attr          { return slog.String(KeyKey, k) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Since reports the elapsed time from start in milliseconds.
func Since(start time.Time) slog.Attr {
	return DurationMS(float64(time.Since(start).Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
