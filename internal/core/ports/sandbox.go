package ports

import (
	"context"

	"go.trai.ch/evolux/internal/core/domain"
)

//go:generate mockgen -source=sandbox.go -destination=mocks/sandbox_mock.go -package=mocks

// SandboxExecutor runs candidate source in an isolated interpreter with a
// restricted environment and a wall-clock budget.
type SandboxExecutor interface {
	Execute(ctx context.Context, run domain.SandboxRun) (any, error)
}
