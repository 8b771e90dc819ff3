package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Service resolves the owning tenant for a request and loads its configuration.
type Service interface {
	// Resolve walks the identity chain (domain, bundle id, agent code) in order
	// and returns the first owning tenant. A total miss is ErrTenantNotFound; a
	// failing store is ErrLookupFailed, never conflated with a miss.
	Resolve(ctx context.Context, input ResolveInput) (*Tenant, error)
	// LoadConfig is total for any tenant id: unknown tenants yield an empty
	// config, not an error.
	LoadConfig(ctx context.Context, tenantID snowflake.ID) (*TenantConfig, error)
	// Context resolves the tenant and loads its config in one call.
	Context(ctx context.Context, input ResolveInput) (*TenantContext, error)
}

// ResolveInput carries the request's origin signals. At least one field must be
// set; resolution order is Domain, then BundleID, then AgentCode.
type ResolveInput struct {
	Domain    string
	BundleID  string
	AgentCode string
}

// TenantConfig is the per-tenant composite loaded after resolution. Collections
// may be empty; Whitelabel and Plan may be nil.
type TenantConfig struct {
	Modules    []string    `json:"modules"`
	Features   []string    `json:"features"`
	Whitelabel *Whitelabel `json:"whitelabel,omitempty"`
	Plan       *PlanInfo   `json:"plan,omitempty"`
}

// Whitelabel is the branding slice of a tenant config.
type Whitelabel struct {
	BrandName string         `json:"brand_name"`
	LogoURL   string         `json:"logo_url"`
	Domain    string         `json:"domain"`
	Theme     map[string]any `json:"theme,omitempty"`
}

// PlanInfo is the subscription slice of a tenant config.
type PlanInfo struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TenantContext is the composite handed to API callers.
type TenantContext struct {
	TenantID    string      `json:"tenant_id"`
	TenantCode  string      `json:"tenant_code"`
	Environment Environment `json:"environment"`
	Modules     []string    `json:"modules"`
	Features    []string    `json:"features"`
	Whitelabel  *Whitelabel `json:"whitelabel,omitempty"`
	Plan        *PlanInfo   `json:"plan,omitempty"`
}

var (
	// ErrTenantNotFound means no resolution path matched. Fatal to the caller;
	// there is no default tenant.
	ErrTenantNotFound = errors.New("tenant_not_found")
	// ErrLookupFailed means the backing store failed or timed out mid-resolution.
	ErrLookupFailed = errors.New("tenant_lookup_failed")
)
