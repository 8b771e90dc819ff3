package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	agentpricingdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	ratedomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/seed"
	tenantdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned SQL targets postgres; other dialects are dev-only
			// and get the schema straight from the models.
			if err := conn.AutoMigrate(
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
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemo {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
