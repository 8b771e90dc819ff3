package service

import (
	"context"
	"testing"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*gorm.DB, domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.Tenant{},
		&domain.TenantDomain{},
		&domain.TenantApp{},
		&domain.TenantModule{},
		&domain.TenantFeature{},
		&domain.TenantWhitelabel{},
		&domain.TenantPlan{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Cfg:  config.Config{LookupTimeoutSeconds: 3},
		Repo: repository.Provide(),
	})
	return db, svc, node
}

func seedTenant(t *testing.T, db *gorm.DB, node *snowflake.Node, code, domainName, bundleID string) domain.Tenant {
	t.Helper()

	tenant := domain.Tenant{
		ID:          node.Generate(),
		Code:        code,
		Name:        code,
		Environment: domain.EnvironmentProduction,
	}
	require.NoError(t, db.Create(&tenant).Error)

	if domainName != "" {
		require.NoError(t, db.Create(&domain.TenantDomain{
			ID:       node.Generate(),
			TenantID: tenant.ID,
			Domain:   domainName,
		}).Error)
	}
	if bundleID != "" {
		require.NoError(t, db.Create(&domain.TenantApp{
			ID:       node.Generate(),
			TenantID: tenant.ID,
			BundleID: bundleID,
			Platform: "android",
		}).Error)
	}
	return tenant
}

func TestResolve_DomainWinsOverOtherSignals(t *testing.T) {
	db, svc, node := newTestService(t)

	alpha := seedTenant(t, db, node, "alpha-travel", "alpha.example.com", "")
	seedTenant(t, db, node, "beta-travel", "", "com.beta.app")

	got, err := svc.Resolve(context.Background(), domain.ResolveInput{
		Domain:    "alpha.example.com",
		BundleID:  "com.beta.app",
		AgentCode: "beta-travel",
	})
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, got.ID)
	assert.Equal(t, "alpha-travel", got.Code)
}

func TestResolve_BundleFallback(t *testing.T) {
	db, svc, node := newTestService(t)

	beta := seedTenant(t, db, node, "beta-travel", "", "com.beta.app")

	got, err := svc.Resolve(context.Background(), domain.ResolveInput{
		Domain:   "unmapped.example.com",
		BundleID: "com.beta.app",
	})
	require.NoError(t, err)
	assert.Equal(t, beta.ID, got.ID)
}

func TestResolve_AgentCodeFallback(t *testing.T) {
	db, svc, node := newTestService(t)

	gamma := seedTenant(t, db, node, "gamma-travel", "", "")

	got, err := svc.Resolve(context.Background(), domain.ResolveInput{
		AgentCode: "gamma-travel",
	})
	require.NoError(t, err)
	assert.Equal(t, gamma.ID, got.ID)
}

func TestResolve_UnknownBundleIsNotFound(t *testing.T) {
	_, svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), domain.ResolveInput{
		BundleID: "com.unknown.app",
	})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestResolve_EmptyInputIsNotFound(t *testing.T) {
	_, svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), domain.ResolveInput{})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestResolve_BackendFailureIsDistinctFromMiss(t *testing.T) {
	db, svc, _ := newTestService(t)

	require.NoError(t, db.Migrator().DropTable(&domain.TenantDomain{}))

	_, err := svc.Resolve(context.Background(), domain.ResolveInput{
		Domain: "alpha.example.com",
	})
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
	assert.NotErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestLoadConfig_TotalForUnknownTenant(t *testing.T) {
	_, svc, node := newTestService(t)

	cfg, err := svc.LoadConfig(context.Background(), node.Generate())
	require.NoError(t, err)
	assert.Empty(t, cfg.Modules)
	assert.Empty(t, cfg.Features)
	assert.Nil(t, cfg.Whitelabel)
	assert.Nil(t, cfg.Plan)
}

func TestTenantModule_DisabledFlagRoundTrips(t *testing.T) {
	db, _, node := newTestService(t)

	id := node.Generate()
	require.NoError(t, db.Create(&domain.TenantModule{
		ID:       id,
		TenantID: node.Generate(),
		Module:   "ticketing",
		Enabled:  false,
	}).Error)

	var got domain.TenantModule
	require.NoError(t, db.First(&got, "id = ?", id).Error)
	assert.False(t, got.Enabled)
}

func TestContext_ComposesResolutionAndConfig(t *testing.T) {
	db, svc, node := newTestService(t)

	tenant := seedTenant(t, db, node, "alpha-travel", "alpha.example.com", "")

	for _, module := range []string{"transport", "hotel"} {
		require.NoError(t, db.Create(&domain.TenantModule{
			ID:       node.Generate(),
			TenantID: tenant.ID,
			Module:   module,
			Enabled:  true,
		}).Error)
	}
	require.NoError(t, db.Create(&domain.TenantModule{
		ID:       node.Generate(),
		TenantID: tenant.ID,
		Module:   "ticketing",
		Enabled:  false,
	}).Error)
	require.NoError(t, db.Create(&domain.TenantFeature{
		ID:       node.Generate(),
		TenantID: tenant.ID,
		Feature:  "agent_pricing",
		Enabled:  true,
	}).Error)
	require.NoError(t, db.Create(&domain.TenantWhitelabel{
		TenantID:  tenant.ID,
		BrandName: "Alpha Travel",
		LogoURL:   "https://cdn.example.com/alpha.png",
		Domain:    "alpha.example.com",
	}).Error)
	require.NoError(t, db.Create(&domain.TenantPlan{
		TenantID: tenant.ID,
		Plan:     "premium",
		Status:   "active",
	}).Error)

	tc, err := svc.Context(context.Background(), domain.ResolveInput{Domain: "alpha.example.com"})
	require.NoError(t, err)

	assert.Equal(t, tenant.ID.String(), tc.TenantID)
	assert.Equal(t, "alpha-travel", tc.TenantCode)
	assert.Equal(t, domain.EnvironmentProduction, tc.Environment)
	assert.Equal(t, []string{"hotel", "transport"}, tc.Modules)
	assert.Equal(t, []string{"agent_pricing"}, tc.Features)
	require.NotNil(t, tc.Whitelabel)
	assert.Equal(t, "Alpha Travel", tc.Whitelabel.BrandName)
	require.NotNil(t, tc.Plan)
	assert.Equal(t, "premium", tc.Plan.Plan)
}
