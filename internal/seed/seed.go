// Package seed provisions demo tenants and rate rules for local evaluation.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	agentpricingdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	ratedomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	tenantdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
	pkgdb "github.com/arfeen-portal/arfeen-portal-sub002/pkg/db"
	pkgrepo "github.com/arfeen-portal/arfeen-portal-sub002/pkg/repository"
)

type demoTenant struct {
	name     string
	domain   string
	bundleID string
	plan     string
	modules  []string
	features []string
}

var demoTenants = []demoTenant{
	{
		name:     "Al Huda Travel",
		domain:   "portal.alhuda.example",
		bundleID: "com.alhuda.portal",
		plan:     "pro",
		modules:  []string{"transport", "hotel", "flight"},
		features: []string{"agent_pricing", "demand_pricing"},
	},
	{
		name:     "Safa Umrah Services",
		domain:   "portal.safa.example",
		bundleID: "com.safa.portal",
		plan:     "basic",
		modules:  []string{"transport", "hotel"},
		features: []string{"agent_pricing"},
	},
}

// EnsureDemoData seeds demo tenants with domains, apps, modules, features,
// branding, plans, a few rate rules and one agent pricing rule. Idempotent:
// existing tenants are left untouched, and a duplicate-key error means a
// concurrently booting instance seeded the same tenant first.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, dt := range demoTenants {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return ensureTenantTx(ctx, tx, node, dt)
		})
		if err != nil && !pkgdb.IsDuplicateKeyErr(err) {
			return err
		}
	}

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureRateRulesTx(ctx, tx, node)
	}); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureAgentRuleTx(ctx, tx, node)
	})
}

func ensureTenantTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, dt demoTenant) error {
	code := slug.Make(dt.name)

	tenants := pkgrepo.ProvideStore[tenantdomain.Tenant](tx)
	existing, err := tenants.FindOne(ctx, &tenantdomain.Tenant{Code: code})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	t := tenantdomain.Tenant{
		ID:          node.Generate(),
		Code:        code,
		Name:        dt.name,
		Environment: tenantdomain.EnvironmentProduction,
	}
	if err := tenants.Create(ctx, &t); err != nil {
		return err
	}

	if err := pkgrepo.ProvideStore[tenantdomain.TenantDomain](tx).Create(ctx, &tenantdomain.TenantDomain{
		ID:       node.Generate(),
		TenantID: t.ID,
		Domain:   dt.domain,
	}); err != nil {
		return err
	}

	if err := pkgrepo.ProvideStore[tenantdomain.TenantApp](tx).Create(ctx, &tenantdomain.TenantApp{
		ID:       node.Generate(),
		TenantID: t.ID,
		BundleID: dt.bundleID,
		Platform: "ios",
	}); err != nil {
		return err
	}

	modules := make([]*tenantdomain.TenantModule, 0, len(dt.modules))
	for _, module := range dt.modules {
		modules = append(modules, &tenantdomain.TenantModule{
			ID:       node.Generate(),
			TenantID: t.ID,
			Module:   module,
			Enabled:  true,
		})
	}
	if err := pkgrepo.ProvideStore[tenantdomain.TenantModule](tx).BatchCreate(ctx, modules); err != nil {
		return err
	}

	features := make([]*tenantdomain.TenantFeature, 0, len(dt.features))
	for _, feature := range dt.features {
		features = append(features, &tenantdomain.TenantFeature{
			ID:       node.Generate(),
			TenantID: t.ID,
			Feature:  feature,
			Enabled:  true,
		})
	}
	if err := pkgrepo.ProvideStore[tenantdomain.TenantFeature](tx).BatchCreate(ctx, features); err != nil {
		return err
	}

	if err := pkgrepo.ProvideStore[tenantdomain.TenantWhitelabel](tx).Create(ctx, &tenantdomain.TenantWhitelabel{
		TenantID:  t.ID,
		BrandName: dt.name,
		Domain:    dt.domain,
	}); err != nil {
		return err
	}

	return pkgrepo.ProvideStore[tenantdomain.TenantPlan](tx).Create(ctx, &tenantdomain.TenantPlan{
		TenantID: t.ID,
		Plan:     dt.plan,
		Status:   "active",
	})
}

func ensureRateRulesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	transportStore := pkgrepo.ProvideStore[ratedomain.TransportRate](tx)

	count, err := transportStore.Count(ctx, &ratedomain.TransportRate{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	transport := []*ratedomain.TransportRate{
		{
			ID:                 node.Generate(),
			Name:               "Jeddah airport to Makkah, sedan",
			Priority:           10,
			Active:             true,
			VehicleType:        "sedan",
			MaxKm:              120,
			PerKmRate:          amount("2.75"),
			AgentCommissionPct: 5,
			ProfitPct:          10,
		},
		{
			ID:                 node.Generate(),
			Name:               "Makkah to Madinah, coaster",
			Priority:           20,
			Active:             true,
			VehicleType:        "coaster",
			MinKm:              300,
			BasePrice:          amount("1500.00"),
			AgentCommissionPct: 8,
			ProfitPct:          12,
		},
	}
	if err := transportStore.BatchCreate(ctx, transport); err != nil {
		return err
	}

	if err := pkgrepo.ProvideStore[ratedomain.HotelRate](tx).Create(ctx, &ratedomain.HotelRate{
		ID:                 node.Generate(),
		Name:               "Makkah 5-star, double room",
		Priority:           10,
		Active:             true,
		City:               "Makkah",
		StarRating:         5,
		RoomType:           "double",
		PerNightRate:       amount("420.00"),
		AgentCommissionPct: 8,
		ProfitPct:          12,
	}); err != nil {
		return err
	}

	return pkgrepo.ProvideStore[ratedomain.FlightRate](tx).Create(ctx, &ratedomain.FlightRate{
		ID:                 node.Generate(),
		Name:               "Jeddah to Cairo, economy",
		Priority:           10,
		Active:             true,
		OriginCode:         "JED",
		DestinationCode:    "CAI",
		CabinClass:         "economy",
		BasePrice:          decimal.RequireFromString("850.00"),
		AgentCommissionPct: 5,
		ProfitPct:          10,
	})
}

func ensureAgentRuleTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	store := pkgrepo.ProvideStore[agentpricingdomain.AgentPricingRule](tx)

	count, err := store.Count(ctx, &agentpricingdomain.AgentPricingRule{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return store.Create(ctx, &agentpricingdomain.AgentPricingRule{
		ID:             node.Generate(),
		AgentID:        "demo-agent",
		MarkupPct:      10,
		MinMargin:      50,
		MaxDiscountPct: 15,
		Active:         true,
	})
}
