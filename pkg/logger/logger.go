package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level        string `split_words:"true" default:"info"`
	PrettyFormat bool   `split_words:"true" default:"false"`
	Service      string `split_words:"true" default:"nexusflow-catalog-agent"`
}

// Init replaces the global logger. Every line carries the service name so
// the HTTP and MCP transports are distinguishable in shared log streams.
func Init(cfg Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := zerolog.New(os.Stdout)
	if cfg.PrettyFormat {
		out = zerolog.New(zerolog.NewConsoleWriter())
	}

	log.Logger = out.Level(level).With().
		Timestamp().
		Str("service", cfg.Service).
		Caller().
		Logger()
}
