package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Error wraps an error under the conventional "error" key. Nil errors
// produce an empty attr that slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple errors under "errors", skipping nils. Returns an
// empty attr when nothing remains.
func Errors(errs ...error) slog.Attr {
	attrs := make([]any, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		attrs = append(attrs, slog.Any(strconv.Itoa(len(attrs)), err))
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return slog.Group("errors", attrs...)
}

// Group nests attrs under key.
func Group(key string, attrs ...slog.Attr) slog.Attr {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return slog.Group(key, args...)
}

// Duration records a duration under the conventional "duration" key.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID records a request correlation identifier; empty IDs are dropped.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Method records an HTTP method.
func Method(m string) slog.Attr { return slog.String("method", m) }

// Path records an HTTP request path.
func Path(p string) slog.Attr { return slog.String("path", p) }

// StatusCode records an HTTP response status.
func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }

// Component labels the emitting subsystem.
func Component(name string) slog.Attr { return slog.String("component", name) }
