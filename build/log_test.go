package build

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

// TestParseAndSetDebugLevels checks global and per subsystem level specs.
func TestParseAndSetDebugLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mgr := NewSubLoggerManager(btclog.NewDefaultHandler(&buf))

	mnch := NewSubLogger("MNCH", mgr.GenSubLogger)
	rpcc := NewSubLogger("RPCC", mgr.GenSubLogger)
	require.Equal(t, []string{"MNCH", "RPCC"}, mgr.SupportedSubsystems())

	require.NoError(t, ParseAndSetDebugLevels("debug,RPCC=trace", mgr))
	require.Equal(t, btclog.LevelDebug, mnch.Level())
	require.Equal(t, btclog.LevelTrace, rpcc.Level())

	require.NoError(t, ParseAndSetDebugLevels("MNCH=error", mgr))
	require.Equal(t, btclog.LevelError, mnch.Level())

	require.ErrorIs(
		t, ParseAndSetDebugLevels("loud", mgr), ErrInvalidLogLevel,
	)
	require.ErrorIs(
		t, ParseAndSetDebugLevels("NOPE=debug", mgr),
		ErrUnknownSubsystem,
	)
	require.ErrorIs(
		t, ParseAndSetDebugLevels("MNCH=loud", mgr), ErrInvalidLogLevel,
	)
	require.Error(t, ParseAndSetDebugLevels("info,MNCH", mgr))
	require.Error(t, ParseAndSetDebugLevels("MNCH=info=x", mgr))

	// A spec with a bad entry leaves every level untouched.
	require.Error(t, ParseAndSetDebugLevels("trace,NOPE=debug", mgr))
	require.Equal(t, btclog.LevelError, mnch.Level())
	require.Equal(t, btclog.LevelTrace, rpcc.Level())

	mnch.Errorf("visible %d", 1)
	require.Contains(t, buf.String(), "visible 1")
	require.Contains(t, buf.String(), "MNCH")
}

// TestNewSubLoggerDisabled checks that a nil generator yields a disabled
// logger.
func TestNewSubLoggerDisabled(t *testing.T) {
	t.Parallel()

	logger := NewSubLogger("TEST", nil)
	require.Equal(t, btclog.Disabled, logger)
}
