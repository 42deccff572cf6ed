// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/evolux/internal/adapters/cache"
	_ "go.trai.ch/evolux/internal/adapters/config"
	_ "go.trai.ch/evolux/internal/adapters/llm"
	_ "go.trai.ch/evolux/internal/adapters/logger"
	_ "go.trai.ch/evolux/internal/adapters/sandbox"
	_ "go.trai.ch/evolux/internal/adapters/validate"
	// Register app and engine nodes.
	_ "go.trai.ch/evolux/internal/app"
	_ "go.trai.ch/evolux/internal/engine/evolve"
)
