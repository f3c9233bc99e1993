package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewDevelopmentLogger(t *testing.T) {
	l, err := New("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewProductionLogger(t *testing.T) {
	l, err := New("production")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLocalLogger(t *testing.T) {
	l, err := New("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
