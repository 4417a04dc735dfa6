package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op creates a slog.Attr naming the operation a log line belongs to.
func Op(name string) slog.Attr {
	return slog.Attr{
		Key:   "op",
		Value: slog.StringValue(name),
	}
}
