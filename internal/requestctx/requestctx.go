// Package requestctx carries request-scoped values through context.
package requestctx

import (
	"context"
	"time"
)

type contextKey string

const (
	requestIDKey    contextKey = "request_id"
	requestTimeKey  contextKey = "request_time"
	functionNameKey contextKey = "function_name"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithRequestTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}

// nameSlot lets a handler publish the function a request resolved to after
// the surrounding middleware has already derived its context.
type nameSlot struct {
	name string
}

// WithFunctionName installs an empty slot for the function name. Installed
// by middleware so handlers can fill it via SetFunctionName.
func WithFunctionName(ctx context.Context) context.Context {
	return context.WithValue(ctx, functionNameKey, &nameSlot{})
}

// SetFunctionName records which function the request addresses, for log
// correlation. No-op when no slot was installed.
func SetFunctionName(ctx context.Context, name string) {
	if slot, ok := ctx.Value(functionNameKey).(*nameSlot); ok {
		slot.name = name
	}
}

func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func RequestTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey).(time.Time); ok {
		return t
	}
	return time.Time{}
}

func FunctionName(ctx context.Context) string {
	if slot, ok := ctx.Value(functionNameKey).(*nameSlot); ok {
		return slot.name
	}
	return ""
}
