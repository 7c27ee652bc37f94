package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, development := range []bool{true, false} {
		logger, err := New(development)
		require.NoError(t, err)
		require.NotNil(t, logger)

		ce := logger.Check(zapcore.InfoLevel, "startup")
		require.NotNil(t, ce)
		assert.Equal(t, "jobscout", ce.Entry.LoggerName)
		ce.Write()
	}
}
