package tenant

import (
	"github.com/mackml1997/reserves-rarities/internal/cache"
	"github.com/mackml1997/reserves-rarities/internal/tenant/repository"
	"github.com/mackml1997/reserves-rarities/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(func() cache.Cache[string, string] {
		return cache.NewTTLCache[string, string]()
	}),
	fx.Provide(service.NewService),
)
