package audit

import (
	"github.com/mackml1997/reserves-rarities/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(service.NewService),
)
