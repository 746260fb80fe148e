package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	switch strings.ToLower(os.Getenv("FOXVALLEY_ENV")) {
	case "dev":
		logger, err = zap.NewDevelopment(opts...)
	case "test":
		return zap.NewNop().Sugar()
	default:
		opts = append(opts, zap.Fields(zap.Field{
			Key:    "FOXVALLEY_ENV",
			Type:   zapcore.StringType,
			String: os.Getenv("FOXVALLEY_ENV"),
		}))
		logger, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

type contextKey string

const ContextKey contextKey = "LOGGER"

func WithLogger(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, log)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	log, ok := ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !ok {
		log = New()
		log.Warn("no logger found in ctx - creating new one")
	}
	return log
}

func init() {
	log := New()
	zap.ReplaceGlobals(log.Desugar())
}
