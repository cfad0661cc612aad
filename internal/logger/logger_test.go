package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestSetLevelFromString rejects unknown names.
func TestSetLevelFromString(t *testing.T) {
	t.Parallel()

	require.Error(t, SetLevelFromString("loud"))
}

// TestContextHelpers checks that the context logger carries name and fields.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), NewWithWriter(&buf, zap.DebugLevel))
	ctx = WithName(ctx, "pyocd-packs")
	ctx = WithKV(ctx, "file", "pyocd.yaml")

	InfoKV(ctx, "Merged", "packs", 2)

	out := buf.String()
	require.Contains(t, out, "pyocd-packs")
	require.Contains(t, out, "Merged")
	require.Contains(t, out, `"file": "pyocd.yaml"`)
	require.Contains(t, out, `"packs": 2`)
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithLevel drops entries below the wrapped level.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zap.DebugLevel, WithLevel(zapcore.WarnLevel))
	l.Info("hidden")
	l.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()

	// The wrapped level replaces the core's level in both directions.
	l = NewWithWriter(&buf, zap.WarnLevel, WithLevel(zapcore.DebugLevel))
	l.Debug("lowered")

	require.Contains(t, buf.String(), "lowered")
}
