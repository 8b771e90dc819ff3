package repository

import (
	"context"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByDomain(ctx context.Context, db *gorm.DB, domainName string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).Raw(
		`SELECT t.id, t.code, t.name, t.environment, t.metadata, t.created_at, t.updated_at
		 FROM tenants t
		 JOIN tenant_domains d ON d.tenant_id = t.id
		 WHERE d.domain = ?`,
		domainName,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) FindByBundleID(ctx context.Context, db *gorm.DB, bundleID string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).Raw(
		`SELECT t.id, t.code, t.name, t.environment, t.metadata, t.created_at, t.updated_at
		 FROM tenants t
		 JOIN tenant_apps a ON a.tenant_id = t.id
		 WHERE a.bundle_id = ?`,
		bundleID,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, environment, metadata, created_at, updated_at
		 FROM tenants WHERE code = ?`,
		code,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) ListModules(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]domain.TenantModule, error) {
	var items []domain.TenantModule
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Order("module ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListFeatures(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]domain.TenantFeature, error) {
	var items []domain.TenantFeature
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Order("feature ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) GetWhitelabel(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*domain.TenantWhitelabel, error) {
	var w domain.TenantWhitelabel
	err := db.WithContext(ctx).Raw(
		`SELECT tenant_id, brand_name, logo_url, domain, theme, created_at, updated_at
		 FROM tenant_whitelabel WHERE tenant_id = ?`,
		tenantID,
	).Scan(&w).Error
	if err != nil {
		return nil, err
	}
	if w.TenantID == 0 {
		return nil, nil
	}
	return &w, nil
}

func (r *repo) GetPlan(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*domain.TenantPlan, error) {
	var p domain.TenantPlan
	err := db.WithContext(ctx).Raw(
		`SELECT tenant_id, plan, status, expires_at, created_at, updated_at
		 FROM tenant_plans WHERE tenant_id = ?`,
		tenantID,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.TenantID == 0 {
		return nil, nil
	}
	return &p, nil
}
