package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/greendilt/footprint/internal/logging"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "warn")

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.ComponentLogger(logging.New(&buf, "debug"), "stats")
	logger.Info().Msg("tagged")
	assert.Contains(t, buf.String(), "stats")
}
