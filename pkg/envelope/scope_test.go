package envelope

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestNewRootScope_GeneratesTraceID(t *testing.T) {
	scope := NewRootScope(context.Background(), "test", "short")
	defer scope.Finish()

	assert.Len(t, scope.TraceID, 32)
	assert.NoError(t, scope.Err())
}

func TestScope_ChildKeepsTraceAndLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	scope := NewRootScope(context.Background(), "test", "")
	scope.SetLogger(logger)
	defer scope.Finish()

	child := scope.NewChildScope("child").WithField("playerID", "p1")
	defer child.Finish()
	child.Log.Info("hello")

	assert.Equal(t, scope.TraceID, child.TraceID)
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "p1", entry.Data["playerID"])
		assert.Equal(t, scope.TraceID, entry.Data[traceIDLogField])
	}
}

func TestScope_ErrAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scope := NewRootScope(ctx, "test", "")
	defer scope.Finish()

	cancel()
	assert.ErrorIs(t, scope.Err(), context.Canceled)
}
