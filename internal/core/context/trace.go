// Package context carries request-scoped values through the call chain.
package context

import (
	"context"

	"stockpos/internal/core/id"
)

// TraceInfo holds request correlation identifiers.
type TraceInfo struct {
	RequestID string
}

type traceKey struct{}

// WithTrace stores trace info in context.
func WithTrace(ctx context.Context, trace *TraceInfo) context.Context {
	return context.WithValue(ctx, traceKey{}, trace)
}

// GetTrace returns trace info from context, or nil.
func GetTrace(ctx context.Context) *TraceInfo {
	if t, ok := ctx.Value(traceKey{}).(*TraceInfo); ok {
		return t
	}
	return nil
}

// NewRequestID generates a fresh request id.
func NewRequestID() string {
	return id.New().String()
}
