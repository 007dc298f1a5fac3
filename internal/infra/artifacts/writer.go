package artifacts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
)

// ObjectStore persists artifact payloads under a key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
}

// StoreWriter is the queue handler that persists artifacts to an object
// store. Write failures are logged and dropped.
type StoreWriter struct {
	store  ObjectStore
	logger *slog.Logger
}

// NewStoreWriter constructs the writer.
func NewStoreWriter(store ObjectStore, logger *slog.Logger) *StoreWriter {
	return &StoreWriter{store: store, logger: logger.With("component", "artifacts.writer")}
}

// Handle writes one artifact.
func (w *StoreWriter) Handle(ctx context.Context, artifact plangen.Artifact) {
	key := objectKey(artifact)
	if err := w.store.Put(ctx, key, []byte(artifact.Payload)); err != nil {
		w.logger.Warn("artifact write failed", "key", key, "error", err)
		return
	}
	w.logger.Debug("artifact stored", "key", key, "bytes", len(artifact.Payload))
}

func objectKey(artifact plangen.Artifact) string {
	user := artifact.UserID
	if user == "" {
		user = "anonymous"
	}
	return fmt.Sprintf("artifacts/%s/%d-%s.txt", user, artifact.CreatedAt.UTC().UnixNano(), artifact.Kind)
}
