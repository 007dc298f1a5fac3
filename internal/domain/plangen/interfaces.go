package plangen

import (
	"context"
	"time"
)

// ModelClient performs the outbound text-generation call.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ArtifactKind labels a generation artifact.
type ArtifactKind string

const (
	ArtifactPrompt   ArtifactKind = "prompt"
	ArtifactResponse ArtifactKind = "response"
	ArtifactError    ArtifactKind = "error"
)

// Artifact is a diagnostic record emitted while generating a plan.
type Artifact struct {
	Kind      ArtifactKind
	UserID    string
	Payload   string
	CreatedAt time.Time
}

// ArtifactRecorder persists generation artifacts for offline debugging.
// Record must never block the caller or surface a failure.
type ArtifactRecorder interface {
	Record(ctx context.Context, artifact Artifact)
}
