package logging

import (
	"log/slog"
	"os"
)

type Config struct {
	ServiceName string
	Environment string
	Level       string
}

// NewLogger builds the JSON logger every other package logs through.
// Level accepts what slog.Level parses: "debug", "INFO", "warn+2", etc.
// A value that does not parse falls back to info, with a warning so a
// typoed LOG_LEVEL does not silently mute debug logs.
func NewLogger(cfg Config) *slog.Logger {
	level := new(slog.LevelVar) // zero value is info

	badLevel := ""
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.Set(slog.LevelInfo)
			badLevel = cfg.Level
		}
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)

	if badLevel != "" {
		logger.Warn("unknown log level, using info", "level", badLevel)
	}

	return logger
}
