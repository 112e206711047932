package aio

import (
	"io"

	"github.com/rs/zerolog/log"
)

// Close closes c and logs a failure. Meant for deferred calls where the error can't be returned.
func Close(c io.Closer) {
	if c == nil {
		return
	}

	if err := c.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close resource")
	}
}
