package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeRedactsSecrets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.Info("calling gemini", "api_key", "AIza-secret", "model", "gemini-2.5-flash", "Authorization", "Bearer x")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "[REDACTED]", fields["api_key"])
		assert.Equal(t, "[REDACTED]", fields["Authorization"])
		assert.Equal(t, "gemini-2.5-flash", fields["model"])
	}
}

func TestSanitizeKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "orphan"})
	assert.Equal(t, []interface{}{"a", 1, "orphan"}, out)
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		log, err := New(mode)
		assert.NoError(t, err, mode)
		assert.NotNil(t, log.With("component", "test"))
	}
}
