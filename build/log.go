package build

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/btcsuite/btclog/v2"
)

var (
	// ErrInvalidLogLevel is returned for a level name btclog does not
	// know.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrUnknownSubsystem is returned for a subsystem that has no
	// registered logger.
	ErrUnknownSubsystem = errors.New("unknown log subsystem")
)

// NewSubLogger constructs a new subsystem logger using the given generator.
// If no generator is given the returned logger is disabled, which is how
// library packages start out until the application hands them a logger.
func NewSubLogger(subsystem string,
	genSubLogger func(string) btclog.Logger) btclog.Logger {

	if genSubLogger == nil {
		return btclog.Disabled
	}

	return genSubLogger(subsystem)
}

// LeveledSubLogger is a set of subsystem loggers whose levels can be set
// individually or all at once.
type LeveledSubLogger interface {
	// SupportedSubsystems returns the sorted names of the registered
	// subsystems.
	SupportedSubsystems() []string

	// SetLogLevel sets the level of a single subsystem.
	SetLogLevel(subsystemID string, logLevel string)

	// SetLogLevels sets the level of every subsystem.
	SetLogLevels(logLevel string)
}

// ParseAndSetDebugLevels applies a level spec of the form
// "[level][,subsystem=level]...". A leading bare level applies to every
// subsystem, the pairs after it override single subsystems. Nothing is
// changed unless the whole spec is valid.
func ParseAndSetDebugLevels(spec string, logger LeveledSubLogger) error {
	entries := strings.Split(spec, ",")

	var global string
	if !strings.Contains(entries[0], "=") {
		global = entries[0]
		if !validLogLevel(global) {
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, global)
		}
		entries = entries[1:]
	}

	subsystems := logger.SupportedSubsystems()
	overrides := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		subsystem, level, ok := strings.Cut(entry, "=")
		if !ok || strings.Contains(level, "=") {
			return fmt.Errorf("malformed subsystem level %q, "+
				"want subsystem=level", entry)
		}
		if !slices.Contains(subsystems, subsystem) {
			return fmt.Errorf("%w: %q (have %v)",
				ErrUnknownSubsystem, subsystem, subsystems)
		}
		if !validLogLevel(level) {
			return fmt.Errorf("%w: %q for %v", ErrInvalidLogLevel,
				level, subsystem)
		}

		overrides = append(overrides, [2]string{subsystem, level})
	}

	if global != "" {
		logger.SetLogLevels(global)
	}
	for _, o := range overrides {
		logger.SetLogLevel(o[0], o[1])
	}

	return nil
}

func validLogLevel(level string) bool {
	_, ok := btclog.LevelFromString(level)
	return ok
}
