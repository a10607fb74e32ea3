// internal/engine/engine.go

// Package engine implements the course advising reasoning engine: curriculum
// resolution, eligibility checking, graduation progress accounting, ability
// inference, recommendation scoring and the reasoning trace. Every operation
// is a pure computation over the immutable knowledge store plus the
// caller-supplied student snapshot, so a single Engine instance is safe for
// concurrent requests.
package engine

import (
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/knowledge"
)

type Engine struct {
	store  *knowledge.Store
	logger logger.Logger
}

// New builds an Engine over an already-loaded knowledge store. Construct one
// at process start and inject it into every handler.
func New(store *knowledge.Store, log logger.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// Store exposes the underlying knowledge store for read-only consumers such
// as catalog search.
func (e *Engine) Store() *knowledge.Store { return e.store }
