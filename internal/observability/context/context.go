// Package context carries correlation identifiers across request boundaries.
package context

import (
	"context"
	"strings"
)

type requestIDKey struct{}
type tenantCodeKey struct{}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID, or empty when unset.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// WithTenantCode stores the resolved tenant code for log correlation.
func WithTenantCode(ctx context.Context, code string) context.Context {
	code = strings.TrimSpace(code)
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, tenantCodeKey{}, code)
}

// TenantCodeFromContext returns the tenant code, or empty when unset.
func TenantCodeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(tenantCodeKey{}).(string)
	return value
}
