// Package observability provides hooks for instrumenting pipeline runs.
//
// Consumers register hooks at startup to receive an event at the start and
// end of every pipeline stage, without the pipeline depending on any metrics
// or tracing backend. The defaults are no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks around each stage:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageMaterialize, name)
//	// ... materialize ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageMaterialize, name, 0, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names passed to PipelineHooks.
const (
	StageMaterialize = "materialize"
	StagePlan        = "plan"
	StagePopulate    = "populate"
	StageMixed       = "mixed"
)

// PipelineHooks receives events from the banner pipeline.
type PipelineHooks interface {
	// OnStageStart is called before a stage runs for subject (a template or
	// category name).
	OnStageStart(ctx context.Context, stage, subject string)

	// OnStageComplete is called after a stage ran. count is the number of
	// banners the stage produced, where that applies.
	OnStageComplete(ctx context.Context, stage, subject string, count int, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, string, int, time.Duration, error) {
}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
// This should be called once at application startup before any pipeline run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op hooks. Useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}

// Track calls OnStageStart now and returns a function that reports
// completion with the elapsed time.
func Track(ctx context.Context, stage, subject string) func(count int, err error) {
	h := Pipeline()
	h.OnStageStart(ctx, stage, subject)
	start := time.Now()
	return func(count int, err error) {
		h.OnStageComplete(ctx, stage, subject, count, time.Since(start), err)
	}
}
