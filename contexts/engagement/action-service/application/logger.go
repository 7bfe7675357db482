package application

import "log/slog"

// ResolveLogger is shared with the worker package, hence exported.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
