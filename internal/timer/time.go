package timer

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Track starts a measurement. The returned func logs and returns the time elapsed since Track was called.
//
//	defer timer.Track("catalog load")()
func Track(name string) func() time.Duration {
	start := time.Now()

	return func() time.Duration {
		elapsed := time.Since(start)
		log.Info().Str("task", name).Dur("elapsed", elapsed).Msgf("%s took %s", name, elapsed)

		return elapsed
	}
}
