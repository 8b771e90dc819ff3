package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	agentpricingdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	ratedomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	tenantdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&tenantdomain.Tenant{},
		&tenantdomain.TenantDomain{},
		&tenantdomain.TenantApp{},
		&tenantdomain.TenantModule{},
		&tenantdomain.TenantFeature{},
		&tenantdomain.TenantWhitelabel{},
		&tenantdomain.TenantPlan{},
		&ratedomain.TransportRate{},
		&ratedomain.HotelRate{},
		&ratedomain.FlightRate{},
		&agentpricingdomain.AgentPricingRule{},
	))
	return db
}

func TestEnsureDemoData_SeedsTenantsAndRules(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDemoData(db))

	var tenant tenantdomain.Tenant
	require.NoError(t, db.First(&tenant, "code = ?", "al-huda-travel").Error)

	var domainRow tenantdomain.TenantDomain
	require.NoError(t, db.First(&domainRow, "domain = ?", "portal.alhuda.example").Error)
	assert.Equal(t, tenant.ID, domainRow.TenantID)

	var modules int64
	require.NoError(t, db.Model(&tenantdomain.TenantModule{}).
		Where("tenant_id = ?", tenant.ID).Count(&modules).Error)
	assert.EqualValues(t, 3, modules)

	var transport int64
	require.NoError(t, db.Model(&ratedomain.TransportRate{}).Count(&transport).Error)
	assert.EqualValues(t, 2, transport)

	var agentRule agentpricingdomain.AgentPricingRule
	require.NoError(t, db.First(&agentRule, "agent_id = ?", "demo-agent").Error)
	assert.True(t, agentRule.Active)
}

func TestEnsureDemoData_Idempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDemoData(db))
	require.NoError(t, EnsureDemoData(db))

	var tenants int64
	require.NoError(t, db.Model(&tenantdomain.Tenant{}).Count(&tenants).Error)
	assert.EqualValues(t, 2, tenants)

	var rates int64
	require.NoError(t, db.Model(&ratedomain.TransportRate{}).Count(&rates).Error)
	assert.EqualValues(t, 2, rates)

	var agentRules int64
	require.NoError(t, db.Model(&agentpricingdomain.AgentPricingRule{}).Count(&agentRules).Error)
	assert.EqualValues(t, 1, agentRules)
}
