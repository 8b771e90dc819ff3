package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository reads tenant identity mappings and config collections. Lookup
// methods return (nil, nil) on a miss and a non-nil error only for backend
// failures.
type Repository interface {
	FindByDomain(ctx context.Context, db *gorm.DB, domainName string) (*Tenant, error)
	FindByBundleID(ctx context.Context, db *gorm.DB, bundleID string) (*Tenant, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Tenant, error)

	ListModules(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]TenantModule, error)
	ListFeatures(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]TenantFeature, error)
	GetWhitelabel(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*TenantWhitelabel, error)
	GetPlan(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*TenantPlan, error)
}
