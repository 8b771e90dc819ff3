package tenant

import (
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/repository"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
