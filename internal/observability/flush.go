package observability

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// FlushTelemetry flushes telemetry before process exit. When metricsOut is non-nil the
// metric registry is written to it first, then logs are synced.
func FlushTelemetry(ctx context.Context, logger *zap.Logger, metricsOut io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("flush telemetry: %w", err)
	}
	if metricsOut != nil {
		if err := WriteText(metricsOut); err != nil {
			return fmt.Errorf("flush metrics: %w", err)
		}
	}
	if logger != nil {
		if err := logger.Sync(); err != nil {
			return fmt.Errorf("flush logs: %w", err)
		}
	}
	return nil
}
