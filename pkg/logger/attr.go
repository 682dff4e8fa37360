package logger

import (
	"log/slog"
	"time"
)

// Error returns an empty Attr for a nil error, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

func Role(role string) slog.Attr {
	if role == "" {
		return slog.Attr{}
	}
	return slog.String("role", role)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component names the subsystem writing the record: "lookups", "http"...
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation names a validated operation such as "register".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Outcome is the result class of an operation, e.g. "valid" or "denied".
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

// Fields lists field names, e.g. the fields that failed validation.
func Fields(names []string) slog.Attr {
	if len(names) == 0 {
		return slog.Attr{}
	}
	return slog.Any("fields", names)
}

func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
