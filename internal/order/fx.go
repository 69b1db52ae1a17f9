package order

import (
	"github.com/mackml1997/reserves-rarities/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.submitter",
	fx.Provide(service.NewService),
)
