package application

import (
	"context"
	"log/slog"

	"openconference/internal/domain"
	"openconference/internal/logging"
)

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	pairs = append(pairs, attrs...)
	return logging.FromContext(ctx, base).With(pairs...)
}

// ErrorKind maps an error to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return code
	}
	return "unexpected"
}

// logOutcome logs a finished mutation. Domain rejections are expected
// traffic and log at warn; anything else is an error.
func logOutcome(ctx context.Context, logger *slog.Logger, err error, success string) {
	switch {
	case err == nil:
		logger.InfoContext(ctx, success)
	case domain.Code(err) != "":
		logger.WarnContext(ctx, "rejected", "error", err, "error_kind", ErrorKind(err))
	default:
		logger.ErrorContext(ctx, "failed", "error", err, "error_kind", ErrorKind(err))
	}
}
