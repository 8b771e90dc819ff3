package rate

import (
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/repository"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
