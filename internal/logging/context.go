package logging

import (
	"context"
	"maps"
	"strings"
)

type contextKey string

const contextFieldsKey contextKey = "wpmigrate.logging.fields"

const fieldRunID = "run_id"

// ContextWithFields returns a context carrying structured logging fields that
// console loggers merge into every entry written with that context. Fields
// already present on the context are kept unless overridden.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextWithRunID tags the context with the identifier of a migration run.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{fieldRunID: runID})
}

// ContextFields extracts previously annotated logging fields from the context.
// The returned map is a copy.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
