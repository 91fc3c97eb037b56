// Package context carries request-scoped values: trace identifiers and the active locale.
package context

import (
	"context"

	"github.com/google/uuid"
)

// DefaultLocale is used when nothing upstream picked a locale.
const DefaultLocale = "en"

// TraceContext contains request tracing information.
type TraceContext struct {
	TraceID   string
	RequestID string
}

type (
	traceContextKey  struct{}
	localeContextKey struct{}
)

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns request ID from context or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// NewTraceContext creates a new TraceContext with generated IDs.
// An incoming request id is kept when present.
func NewTraceContext(requestID string) *TraceContext {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &TraceContext{
		TraceID:   uuid.New().String(),
		RequestID: requestID,
	}
}

// WithLocale stores the active UI locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the active locale or DefaultLocale.
func GetLocale(ctx context.Context) string {
	if v, ok := ctx.Value(localeContextKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLocale
}

// HasLocale reports whether a locale was set explicitly.
func HasLocale(ctx context.Context) bool {
	v, ok := ctx.Value(localeContextKey{}).(string)
	return ok && v != ""
}
