package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appctx "malladmin/internal/core/context"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{zap.New(core).Sugar()}, logs
}

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })
}

func TestSetDefault_IgnoresNil(t *testing.T) {
	restoreDefault(t)
	l, logs := observed()
	SetDefault(l)

	SetDefault(nil)
	SetDefault(&Logger{})

	require.NotNil(t, Default())
	Default().WithComponent("list").Info("still here")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "list", logs.All()[0].ContextMap()["component"])
}

func TestDefault_ConcurrentWithSetDefault(t *testing.T) {
	restoreDefault(t)
	l, _ := observed()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetDefault(l)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Default())
		}()
	}
	wg.Wait()
	assert.Same(t, l, Default())
}

func TestFromContext(t *testing.T) {
	l, logs := observed()

	ctx := appctx.WithLocale(WithLogger(context.Background(), l), "hi")
	FromContext(ctx).Infow("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hi", logs.All()[0].ContextMap()["locale"])

	var nilLogger *Logger
	assert.NotNil(t, FromContext(WithLogger(context.Background(), nilLogger)))
}
