package ports

import (
	"context"

	"go.trai.ch/evolux/internal/core/domain"
)

//go:generate mockgen -source=synthesizer.go -destination=mocks/synthesizer_mock.go -package=mocks

// Synthesizer produces candidate function bodies from a synthesis request.
// The returned string is raw backend output; normalization and validation
// happen downstream.
type Synthesizer interface {
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (string, error)
}
