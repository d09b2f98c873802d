// Package logging provides the structured, leveled logger shared by every
// sqlterm subsystem. Subsystems tag their lines the way the teacher's
// bracketed log.Printf calls did ("[CACHE_HIT] ...", "[CACHE_MISS_STAGE]
// ..."), except the tag becomes a zerolog field rather than a string prefix.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	base zerolog.Logger
	once sync.Once
)

func initBase() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := levelFromEnv(os.Getenv("SQLTERM_LOG_LEVEL"))
	var out io.Writer = os.Stderr
	base = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// levelFromEnv maps the SQLTERM_LOG_LEVEL environment variable (spec.md §6)
// to a zerolog level, defaulting to Info when unset or unrecognized.
func levelFromEnv(v string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off", "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a logger tagged with the given subsystem name, e.g.
// logging.Component("query") for the query engine or "history" for the
// history store.
func Component(name string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	once.Do(initBase)
	return base.With().Str("component", name).Logger()
}

// SetOutput redirects all future Component() loggers to w. Nothing in
// sqlterm, its tests included, calls it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	once.Do(initBase)
	base = base.Output(w)
}
