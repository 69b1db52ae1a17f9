package customer

import (
	"github.com/mackml1997/reserves-rarities/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.resolver",
	fx.Provide(service.NewService),
)
