package logging

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewLoggerWithConfig_WritesConsoleAndFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "journal.log")
	logger := NewLoggerWithConfig(LogConfig{
		Level:    "info",
		Console:  true,
		File:     true,
		FilePath: path,
		MaxSize:  1,
		NoColor:  true,
		Out:      &console,
	})

	logger.Info().Str("trade_id", "t1").Msg("Trade recorded")
	logger.Debug().Msg("hidden")

	assert.Contains(t, console.String(), "Trade recorded")
	assert.NotContains(t, console.String(), "hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"trade_id":"t1"`)
}

func TestNewLoggerWithConfig_NoWriters(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := NewLoggerWithConfig(LogConfig{Level: "info"})
	logger.Info().Msg("discarded")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), logger)
	ctxLogger := FromContext(ctx)
	ctxLogger.Info().Msg("from context")
	nopLogger := FromContext(context.Background())
	nopLogger.Info().Msg("nop")

	assert.Contains(t, buf.String(), "from context")
	assert.NotContains(t, buf.String(), "nop")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(prev)

	LogCommand(WithCommand(logger, "trade add"), "trade add", time.Millisecond, errors.New("boom"))
	assert.Contains(t, buf.String(), `"command":"trade add"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), "Command failed")
}
