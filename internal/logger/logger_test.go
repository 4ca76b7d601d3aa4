package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewForTests()
		ctx := ContextWithLogger(context.Background(), expected)

		actual := FromContext(ctx)

		require.NotNil(t, actual)
		assert.Equal(t, expected, actual)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		l := FromContext(context.Background())

		require.NotNil(t, l)
		assert.Equal(t, GetDefault(), l)
	})

	t.Run("Should return default logger when wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerCtxKey, "not a logger")

		assert.Equal(t, GetDefault(), FromContext(ctx))
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should convert all log levels", func(t *testing.T) {
		uu := map[LogLevel]int{
			DebugLevel:          -4,
			InfoLevel:           0,
			WarnLevel:           4,
			ErrorLevel:          8,
			DisabledLevel:       1000,
			LogLevel("unknown"): 0,
		}
		for level, e := range uu {
			assert.Equal(t, e, int(level.ToCharmlogLevel()), "level %s", level)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should honor the level threshold", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		l.Info("hidden")
		l.Warn("shown", "k", "v")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "k=v")
	})

	t.Run("Should emit JSON when asked", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})

		l.With("view", "user").Error("boom")

		assert.Contains(t, buf.String(), `"msg":"boom"`)
		assert.Contains(t, buf.String(), `"view":"user"`)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("Should install the default logger", func(t *testing.T) {
		prev := GetDefault()
		defer SetDefault(prev)

		var buf bytes.Buffer
		l := SetupLogger("debug", false, &buf)
		Debug("hello")

		assert.Equal(t, l, GetDefault())
		assert.Contains(t, buf.String(), "hello")
	})
}
