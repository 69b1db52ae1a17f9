package gateway

import (
	"github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	"github.com/mackml1997/reserves-rarities/internal/gateway/stripe"
	"go.uber.org/fx"
)

var Module = fx.Module("gateway",
	fx.Provide(stripe.NewClient),
	fx.Provide(func(client *stripe.Client) domain.Gateway {
		return client
	}),
)
