// Package logger builds the process-wide zerolog logger.
//
// Call Init once from main; components take child loggers from Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configure the root logger.
type Options struct {
	// Level is a zerolog level name. Empty or unknown values mean info.
	Level string
	// Pretty switches to the coloured console writer. Production emits JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is attached to every line when set.
	Service string
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the root logger on first call and returns it. Later calls
// return the same logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root != nil {
		return *root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()
	root = &l
	return l
}

// Component returns a child of the root logger tagged with the component
// name. It panics when Init has not run.
func Component(name string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		panic("logger: Component called before Init")
	}
	return root.With().Str("component", name).Logger()
}

// reset drops the root logger so tests can rebuild it.
func reset() {
	mu.Lock()
	root = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
