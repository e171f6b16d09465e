// Package logsink adapts the settings warning logger onto zerolog so
// registry warnings land in the application's structured log stream.
package logsink

import (
	"github.com/rs/zerolog"

	settings "github.com/goliatone/go-settings"
)

// Zerolog forwards registry warnings to a zerolog logger.
type Zerolog struct {
	Logger zerolog.Logger
}

// LogWarning implements settings.Logger.
func (z Zerolog) LogWarning(event settings.LogEvent) {
	z.Logger.Warn().
		Str("op", event.Op).
		Str("key", event.Key).
		Msg(event.Message)
}

// New wires a zerolog logger into a settings.Logger.
func New(logger zerolog.Logger) settings.Logger {
	return Zerolog{Logger: logger}
}
