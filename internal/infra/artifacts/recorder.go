package artifacts

import (
	"context"
	"log/slog"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
)

// Queue moves artifacts off the generation path to a background writer.
type Queue interface {
	Enqueue(ctx context.Context, artifact plangen.Artifact) error
	SetHandler(handler Handler)
}

// Handler consumes artifacts delivered by a queue.
type Handler func(ctx context.Context, artifact plangen.Artifact)

// QueueRecorder implements plangen.ArtifactRecorder by enqueueing artifacts.
// Enqueue failures are logged and swallowed so recording never disturbs the
// generation path.
type QueueRecorder struct {
	queue  Queue
	logger *slog.Logger
}

// NewQueueRecorder constructs the recorder.
func NewQueueRecorder(queue Queue, logger *slog.Logger) *QueueRecorder {
	return &QueueRecorder{queue: queue, logger: logger.With("component", "artifacts.recorder")}
}

// Record enqueues an artifact. The enqueue outlives the caller's context so
// artifacts from abandoned requests still land.
func (r *QueueRecorder) Record(ctx context.Context, artifact plangen.Artifact) {
	if err := r.queue.Enqueue(context.WithoutCancel(ctx), artifact); err != nil {
		r.logger.Warn("artifact enqueue failed", "kind", artifact.Kind, "error", err)
	}
}

// NopRecorder drops artifacts. Used by the CLI and in tests.
type NopRecorder struct{}

// Record discards the artifact.
func (NopRecorder) Record(context.Context, plangen.Artifact) {}

var _ plangen.ArtifactRecorder = (*QueueRecorder)(nil)
var _ plangen.ArtifactRecorder = NopRecorder{}
