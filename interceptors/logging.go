package interceptors

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
)

// InterceptorLogger adapts a zap logger to the go-grpc-middleware logger.
// Fields arrive as alternating keys and values; non-string keys are dropped.
func InterceptorLogger(l *zap.Logger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		ce := l.Check(zapLevel(lvl), msg)
		if ce == nil {
			return
		}
		zapFields := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			if key, ok := fields[i].(string); ok {
				zapFields = append(zapFields, zap.Any(key, fields[i+1]))
			}
		}
		ce.Write(zapFields...)
	})
}

func zapLevel(lvl logging.Level) zapcore.Level {
	switch lvl {
	case logging.LevelDebug:
		return zapcore.DebugLevel
	case logging.LevelInfo:
		return zapcore.InfoLevel
	case logging.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func loggingOptions() []logging.Option {
	return []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
		logging.WithLevels(logging.DefaultServerCodeToLevel),
	}
}

// ZapLoggingInterceptor logs every finished unary call.
func ZapLoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(InterceptorLogger(logger), loggingOptions()...)
}

// ZapStreamLoggingInterceptor logs every finished streaming call, such as
// health Watch.
func ZapStreamLoggingInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return logging.StreamServerInterceptor(InterceptorLogger(logger), loggingOptions()...)
}
