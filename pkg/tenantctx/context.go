// Package tenantctx carries the resolved tenant through request contexts.
package tenantctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// TenantContextKey is the request context key for the active tenant ID.
type TenantContextKey struct{}

// CodeContextKey is the request context key for the active tenant code.
type CodeContextKey struct{}

// WithTenantID stores the tenant ID in the context.
func WithTenantID(ctx context.Context, tenantID snowflake.ID) context.Context {
	return context.WithValue(ctx, TenantContextKey{}, tenantID)
}

// WithTenantCode stores the tenant code in the context.
func WithTenantCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, CodeContextKey{}, code)
}

// TenantIDFromContext returns the tenant ID from context, if set.
func TenantIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(TenantContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// TenantCodeFromContext returns the tenant code from context, if set.
func TenantCodeFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	code, ok := ctx.Value(CodeContextKey{}).(string)
	if !ok || strings.TrimSpace(code) == "" {
		return "", false
	}
	return code, true
}
