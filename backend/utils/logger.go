package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger returns the process-wide structured logger. LOG_FORMAT=json
// switches off the console writer for machine-readable output.
func InitLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if os.Getenv("LOG_FORMAT") == "json" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger()
}
