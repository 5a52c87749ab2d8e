package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Level falls back to info when the
// configured value does not parse.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}
