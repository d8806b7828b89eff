// Package obs sets up the structured logger the planner traces through.
// Embedders configure the level once at startup; the planner package only
// ever calls the package-level Logger().
package obs

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()
)

// SetLevel sets the minimum level the planner's logger emits at. Embedders
// that want per-pruning-decision tracing call SetLevel(zerolog.DebugLevel).
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}

// Logger returns the shared planner logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &logger
}
