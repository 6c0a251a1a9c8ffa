package ports

import (
	"context"
	"time"
)

// MetricsExporter exports run metrics to an external observability system.
type MetricsExporter interface {
	// ExportRunMetrics records the outcome of a finished run.
	ExportRunMetrics(ctx context.Context, m *RunMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// RunMetrics describes one finished project creation run.
type RunMetrics struct {
	RunID string
	// Outcome is "succeeded", "failed" or "rejected".
	Outcome string
	// FailedStage is empty unless Outcome is "failed" or "rejected".
	FailedStage     string
	BytesDownloaded int64
	CleanupFailed   bool
	Duration        time.Duration
}
