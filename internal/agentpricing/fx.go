package agentpricing

import (
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/repository"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agentpricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
