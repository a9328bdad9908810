package llmclient

import "context"

type stageKey struct{}

// WithStage tags the context with a pipeline stage name for logging.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey{}, stage)
}

// StageFrom returns the stage name set by WithStage, or "-" if absent.
func StageFrom(ctx context.Context) string {
	if v, ok := ctx.Value(stageKey{}).(string); ok && v != "" {
		return v
	}
	return "-"
}
