package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{" WARN ", WarnLevel},
		{"error", ErrorLevel},
		{"disabled", DisabledLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write text output at or above the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		l.Info("hidden message")
		l.Warn("shown message", "series", 2)

		out := buf.String()
		assert.NotContains(t, out, "hidden message")
		assert.Contains(t, out, "shown message")
		assert.Contains(t, out, "series=2")
	})

	t.Run("Should write JSON when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})

		l.Info("json message")

		out := strings.TrimSpace(buf.String())
		assert.True(t, strings.HasPrefix(out, "{"))
		assert.Contains(t, out, "json message")
	})

	t.Run("Should carry fields added with With", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: DebugLevel, Output: &buf}).With("element", "el-1")

		l.Debug("applied")

		assert.Contains(t, buf.String(), "element=el-1")
	})

	t.Run("Should discard everything when disabled", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: DisabledLevel, Output: &buf})

		l.Error("nothing")

		assert.Empty(t, buf.String())
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return the stored logger", func(t *testing.T) {
		expected := NewNopLogger()
		ctx := ContextWithLogger(context.Background(), expected)

		assert.Equal(t, expected, FromContext(ctx))
	})

	t.Run("Should fall back to a usable logger", func(t *testing.T) {
		l := FromContext(context.Background())

		require.NotNil(t, l)
		l.Info("no panic")
	})
}
