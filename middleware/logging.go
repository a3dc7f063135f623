package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/restkit/restcall"
)

// LoggingInterceptor creates an interceptor that logs outbound calls using
// slog. It logs the start and end of each call, including duration and
// error status.
func LoggingInterceptor(logger *slog.Logger) restcall.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, args restcall.Args, next restcall.InvokeFunc) (*restcall.Result, error) {
		start := time.Now()

		attrs := []any{}
		if info, ok := restcall.CallFromContext(ctx); ok {
			attrs = append(attrs,
				slog.String("registry", info.Registry),
				slog.String("call", info.Call),
				slog.String("verb", info.Verb),
			)
		}

		logger.InfoContext(ctx, "call started", attrs...)

		res, err := next(ctx, args)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "call failed",
				append(attrs, slog.Duration("duration", duration), slog.Any("error", err))...)
			return res, err
		}

		status := 0
		if res != nil && res.Response != nil {
			status = res.Response.StatusCode
		}
		logger.InfoContext(ctx, "call completed",
			append(attrs, slog.Duration("duration", duration), slog.Int("status", status))...)
		return res, err
	}
}
