package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func SetupConsoleLogger() {
	setup(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// SetupJSONLogger writes one json document per log event, meant for log collectors.
func SetupJSONLogger(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	setup(w)
}

// Setup configures the global logger for the given format ("console" or "json") and level.
func Setup(format string, level string) error {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		SetupJSONLogger(os.Stderr)
	} else {
		SetupConsoleLogger()
	}

	return SetLogLevel(level)
}

func setup(w io.Writer) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	log.Logger = log.Output(w).
		With().
		Stack().
		Caller().
		Logger()
}

func SetLogLevel(logLevel string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	return nil
}
