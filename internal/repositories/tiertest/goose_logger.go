package tiertest

import (
	"strings"

	"github.com/rs/zerolog"
)

// gooseLogger routes goose migration output through zerolog
type gooseLogger struct {
	logger zerolog.Logger
}

func newGooseLogger(logger zerolog.Logger) *gooseLogger {
	return &gooseLogger{logger: logger.With().Str("component", "goose").Logger()}
}

// Printf implements goose.Logger
func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info().Msgf(strings.TrimSpace(format), v...)
}

// Fatalf implements goose.Logger; goose only calls it from its own CLI paths
func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal().Msgf(strings.TrimSpace(format), v...)
}
