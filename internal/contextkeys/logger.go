package contextkeys

import (
	"context"

	"listing-service/internal/core/port"
)

type (
	loggerKey  struct{}
	traceIDKey struct{}
)

// ContextWithLogger кладет логгер запроса в контекст.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// ContextWithTrace связывает trace_id и логгер: в контекст попадают оба,
// логгер уже несет поле trace_id. Пустой traceID оставляет логгер как есть.
func ContextWithTrace(ctx context.Context, logger port.LoggerPort, traceID string) (context.Context, port.LoggerPort) {
	if traceID != "" {
		logger = logger.WithFields(port.Fields{"trace_id": traceID})
		ctx = context.WithValue(ctx, traceIDKey{}, traceID)
	}
	return ContextWithLogger(ctx, logger), logger
}

// LoggerFromContext возвращает логгер запроса, без него - no-op.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey{}).(port.LoggerPort); ok {
		return logger
	}
	return noopLogger{}
}

// TraceIDFromContext возвращает trace_id или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

type noopLogger struct{}

func (noopLogger) Info(string, port.Fields)                 {}
func (noopLogger) Warn(string, port.Fields)                 {}
func (noopLogger) Error(string, error, port.Fields)         {}
func (noopLogger) Debug(string, port.Fields)                {}
func (n noopLogger) WithFields(port.Fields) port.LoggerPort { return n }
