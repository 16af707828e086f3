package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Level   string
	Format  string
	NoColor bool

	// Output defaults to stderr.
	Output io.Writer
}

// InitDefault sets up a console logger at info level, used before flags are parsed.
func InitDefault() {
	Init(Options{Level: "info", Format: FormatConsole})
}

// Init configures the global zerolog logger.
func Init(opts Options) {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.Format == FormatJSON {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    opts.NoColor,
			TimeFormat: time.TimeOnly,
		})
	}
	zerolog.DefaultContextLogger = &log.Logger

	if err != nil {
		log.Warn().Str("level", opts.Level).Msg("invalid log level, falling back to info")
	}
}
