package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/bcnbhd/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("warn", &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.Int("n", 3))
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Regexp(t, `"n": ?3`, buf.String())
}

func TestNew_DefaultAndInvalid(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("", &buf)
	require.NoError(t, err)
	log.Info("visible")
	assert.Contains(t, buf.String(), "visible")

	_, err = logging.New("loud", &buf)
	assert.Error(t, err)
}

func TestQuiet(t *testing.T) {
	assert.NotPanics(t, func() { logging.Quiet().Error("nothing") })
}
