package build

import (
	"sort"
	"sync"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

// SubLoggerManager hands out subsystem loggers that all write through one
// handler and keeps track of them so their levels can be changed later.
type SubLoggerManager struct {
	handler btclog.Handler

	mu         sync.Mutex
	subLoggers map[string]btclog.Logger
	defaultLvl btclogv1.Level
}

// A compile-time check to ensure SubLoggerManager implements the
// LeveledSubLogger interface.
var _ LeveledSubLogger = (*SubLoggerManager)(nil)

// NewSubLoggerManager constructs a manager writing through handler. New
// subsystem loggers start at the info level.
func NewSubLoggerManager(handler btclog.Handler) *SubLoggerManager {
	return &SubLoggerManager{
		handler:    handler,
		subLoggers: make(map[string]btclog.Logger),
		defaultLvl: btclog.LevelInfo,
	}
}

// GenSubLogger creates and registers a logger for the given subsystem. It
// has the signature NewSubLogger expects of a generator.
func (r *SubLoggerManager) GenSubLogger(subsystem string) btclog.Logger {
	logger := btclog.NewSLogger(r.handler).SubSystem(subsystem)

	r.mu.Lock()
	defer r.mu.Unlock()

	logger.SetLevel(r.defaultLvl)
	r.subLoggers[subsystem] = logger

	return logger
}

// SupportedSubsystems returns a sorted list of the registered subsystems.
func (r *SubLoggerManager) SupportedSubsystems() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	subsystems := make([]string, 0, len(r.subLoggers))
	for name := range r.subLoggers {
		subsystems = append(subsystems, name)
	}
	sort.Strings(subsystems)

	return subsystems
}

// SetLogLevel sets the level of a single subsystem. Unknown subsystems and
// invalid levels are ignored.
func (r *SubLoggerManager) SetLogLevel(subsystemID string, logLevel string) {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if logger, ok := r.subLoggers[subsystemID]; ok {
		logger.SetLevel(level)
	}
}

// SetLogLevels sets the level of every subsystem, including those that are
// registered later. Invalid levels are ignored.
func (r *SubLoggerManager) SetLogLevels(logLevel string) {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultLvl = level
	for _, logger := range r.subLoggers {
		logger.SetLevel(level)
	}
}
