package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var Log zerolog.Logger

// Init configures the global logger. Pretty console output is meant
// for local development; production keeps plain JSON lines.
func Init(pretty bool) {
	var w = zerolog.MultiLevelWriter(os.Stdout)
	if pretty {
		w = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	Log = zerolog.New(w).With().Timestamp().Logger()
}
