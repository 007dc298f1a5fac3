package artifacts

import (
	"context"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
)

// ImmediateQueue dispatches artifacts to the handler on a fresh goroutine.
// Suitable for single-process deployments and development.
type ImmediateQueue struct {
	handler Handler
}

// NewImmediateQueue constructs an in-process queue.
func NewImmediateQueue() *ImmediateQueue {
	return &ImmediateQueue{}
}

// SetHandler registers the consumer. Must be called before Enqueue.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.handler = handler
}

// Enqueue hands the artifact to the handler asynchronously.
func (q *ImmediateQueue) Enqueue(ctx context.Context, artifact plangen.Artifact) error {
	if q.handler == nil {
		return nil
	}
	go q.handler(ctx, artifact)
	return nil
}

var _ Queue = (*ImmediateQueue)(nil)
