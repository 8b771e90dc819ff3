// Package domain contains persistence models for the tenant service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Environment classifies a tenant deployment target.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
)

// Tenant represents a business account on the platform.
type Tenant struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Code        string            `gorm:"type:text;not null;uniqueIndex:ux_tenants_code" json:"code"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Environment Environment       `gorm:"type:text;not null;default:'production'" json:"environment"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

// TenantDomain maps a web domain to its owning tenant.
type TenantDomain struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	Domain    string       `gorm:"type:text;not null;uniqueIndex:ux_tenant_domains_domain" json:"domain"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TenantDomain) TableName() string { return "tenant_domains" }

// TenantApp maps a mobile app bundle to its owning tenant.
type TenantApp struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	BundleID  string       `gorm:"column:bundle_id;type:text;not null;uniqueIndex:ux_tenant_apps_bundle" json:"bundle_id"`
	Platform  string       `gorm:"type:text" json:"platform"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TenantApp) TableName() string { return "tenant_apps" }

// TenantModule marks a back-office module as enabled for a tenant.
type TenantModule struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index:ux_tenant_modules,priority:1;uniqueIndex:ux_tenant_modules_name,priority:1" json:"tenant_id"`
	Module    string       `gorm:"type:text;not null;uniqueIndex:ux_tenant_modules_name,priority:2" json:"module"`
	Enabled   bool         `gorm:"not null" json:"enabled"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TenantModule) TableName() string { return "tenant_modules" }

// TenantFeature marks a feature flag as enabled for a tenant.
type TenantFeature struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index;uniqueIndex:ux_tenant_features_flag,priority:1" json:"tenant_id"`
	Feature   string       `gorm:"type:text;not null;uniqueIndex:ux_tenant_features_flag,priority:2" json:"feature"`
	Enabled   bool         `gorm:"not null" json:"enabled"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TenantFeature) TableName() string { return "tenant_features" }

// TenantWhitelabel stores branding for a tenant's white-label surface.
type TenantWhitelabel struct {
	TenantID  snowflake.ID      `gorm:"primaryKey" json:"tenant_id"`
	BrandName string            `gorm:"type:text" json:"brand_name"`
	LogoURL   string            `gorm:"column:logo_url;type:text" json:"logo_url"`
	Domain    string            `gorm:"type:text" json:"domain"`
	Theme     datatypes.JSONMap `gorm:"type:jsonb" json:"theme"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TenantWhitelabel) TableName() string { return "tenant_whitelabel" }

// TenantPlan stores the subscription tier for a tenant.
type TenantPlan struct {
	TenantID  snowflake.ID `gorm:"primaryKey" json:"tenant_id"`
	Plan      string       `gorm:"type:text;not null" json:"plan"`
	Status    string       `gorm:"type:text;not null;default:'active'" json:"status"`
	ExpiresAt *time.Time   `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TenantPlan) TableName() string { return "tenant_plans" }
