package artifacts

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
)

const pollTimeout = 5 * time.Second

type artifactEnvelope struct {
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// ValkeyQueue pushes artifacts onto a Valkey list and consumes them with
// BRPOP. Lets a separate worker drain artifacts in multi-process setups.
type ValkeyQueue struct {
	client  valkey.Client
	key     string
	handler Handler
	logger  *slog.Logger
	stop    chan struct{}
}

// NewValkeyQueue constructs a queue backed by the given list key.
func NewValkeyQueue(client valkey.Client, key string, logger *slog.Logger) *ValkeyQueue {
	return &ValkeyQueue{
		client: client,
		key:    key,
		logger: logger.With("component", "artifacts.queue"),
		stop:   make(chan struct{}),
	}
}

// SetHandler registers the consumer and starts the drain loop.
func (q *ValkeyQueue) SetHandler(handler Handler) {
	q.handler = handler
	go q.consume()
}

// Enqueue pushes one artifact onto the list.
func (q *ValkeyQueue) Enqueue(ctx context.Context, artifact plangen.Artifact) error {
	body, err := json.Marshal(artifactEnvelope{
		Kind:      string(artifact.Kind),
		UserID:    artifact.UserID,
		Payload:   artifact.Payload,
		CreatedAt: artifact.CreatedAt,
	})
	if err != nil {
		return err
	}
	return q.client.Do(ctx, q.client.B().Lpush().Key(q.key).Element(string(body)).Build()).Error()
}

func (q *ValkeyQueue) consume() {
	ctx := context.Background()
	for {
		select {
		case <-q.stop:
			return
		default:
		}
		entries, err := q.client.Do(ctx, q.client.B().Brpop().Key(q.key).Timeout(pollTimeout.Seconds()).Build()).AsStrSlice()
		if err != nil {
			if valkey.IsValkeyNil(err) {
				continue
			}
			q.logger.Warn("artifact poll failed", "error", err)
			time.Sleep(pollTimeout)
			continue
		}
		// BRPOP replies with the list key followed by the element.
		if len(entries) < 2 {
			continue
		}
		var envelope artifactEnvelope
		if err := json.Unmarshal([]byte(entries[1]), &envelope); err != nil {
			q.logger.Warn("malformed artifact dropped", "error", err)
			continue
		}
		q.handler(ctx, plangen.Artifact{
			Kind:      plangen.ArtifactKind(envelope.Kind),
			UserID:    envelope.UserID,
			Payload:   envelope.Payload,
			CreatedAt: envelope.CreatedAt,
		})
	}
}

var _ Queue = (*ValkeyQueue)(nil)
