package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("logger in ctx", func(t *testing.T) {
		log := zap.NewNop().Sugar()
		ctx := WithLogger(context.Background(), log)

		require.Same(t, log, FromContext(ctx))
	})

	t.Run("no logger in ctx", func(t *testing.T) {
		t.Setenv("FOXVALLEY_ENV", "test")
		require.NotNil(t, FromContext(context.Background()))
	})
}
